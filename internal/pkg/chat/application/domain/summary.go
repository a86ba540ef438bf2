package chat

import directory "go-hrdesk/internal/pkg/directory/application/domain"

const unknownDisplayName = "Unknown"

// ConversationSummary is one row of a user's conversation list.
type ConversationSummary struct {
	Conversation
	Members       []directory.Summary `json:"members"`
	DisplayName   string              `json:"display_name"`
	LatestMessage *Message            `json:"latest_message,omitempty"`
}

// DisplayNameFor names a conversation from the viewer's side: the other
// member's full name for direct threads, the title for groups.
func DisplayNameFor(c Conversation, members []directory.Summary, viewerID string) string {
	if c.IsGroup {
		if c.Title != nil {
			return *c.Title
		}
		return ""
	}
	for _, m := range members {
		if m.ID != viewerID {
			p := directory.Profile{FirstName: m.FirstName, LastName: m.LastName}
			return p.FullName()
		}
	}
	return unknownDisplayName
}
