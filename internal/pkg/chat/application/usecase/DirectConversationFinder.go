package usecase

import (
	"context"

	chat "go-hrdesk/internal/pkg/chat/application/domain"
	repository "go-hrdesk/internal/pkg/chat/persistence/repository/port"
)

// DirectConversationFinder locates the direct thread of an unordered pair.
// A store with a normalized pair key can answer this with a single lookup.
type DirectConversationFinder interface {
	FindDirect(ctx context.Context, userA, userB string) (id string, found bool, err error)
}

// LinearScanFinder checks every untitled non-group conversation for the exact
// member set {userA, userB}, oldest first.
type LinearScanFinder struct {
	Repo repository.ChatRepository
}

func NewLinearScanFinder(repo repository.ChatRepository) *LinearScanFinder {
	return &LinearScanFinder{Repo: repo}
}

func (f *LinearScanFinder) FindDirect(ctx context.Context, userA, userB string) (string, bool, error) {
	candidates, err := f.Repo.ListDirectCandidates(ctx)
	if err != nil {
		return "", false, err
	}
	if len(candidates) == 0 {
		return "", false, nil
	}
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	members, err := f.Repo.ListMembers(ctx, ids)
	if err != nil {
		return "", false, err
	}
	byConv := make(map[string][]string, len(candidates))
	for _, m := range members {
		byConv[m.ConversationID] = append(byConv[m.ConversationID], m.ProfileID)
	}
	for _, c := range candidates {
		if chat.NewChat(c, byConv[c.ID]).IsDirectBetween(userA, userB) {
			return c.ID, true, nil
		}
	}
	return "", false, nil
}
