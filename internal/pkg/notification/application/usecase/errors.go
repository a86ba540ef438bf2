package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("notification use case persistence error")

// ErrInvalidInput wraps validator failures on use case inputs
var ErrInvalidInput = fmt.Errorf("notification use case invalid input")
