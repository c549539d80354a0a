package chat

// TurnRequest is the boundary contract for one conversation turn.
// Absent SessionData means a fresh session.
type TurnRequest struct {
	Message     string       `json:"message"`
	Mode        Mode         `json:"mode"`
	SessionData *SessionData `json:"sessionData,omitempty"`
}

// VocabQuestion is a multiple-choice vocabulary question.
type VocabQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// TurnResponse is what one turn hands back to the client. SessionData is
// always present and must be fed unchanged into the next turn.
type TurnResponse struct {
	Response       string         `json:"response"`
	VocabQuestion  *VocabQuestion `json:"vocabQuestion,omitempty"`
	SessionData    *SessionData   `json:"sessionData"`
	SuggestedTheme string         `json:"suggestedTheme,omitempty"`
}
