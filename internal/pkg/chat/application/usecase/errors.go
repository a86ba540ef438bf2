package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("chat use case persistence error")

// ErrInvalidInput wraps validator failures on use case inputs
var ErrInvalidInput = fmt.Errorf("chat use case invalid input")
