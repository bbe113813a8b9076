package chat

import "time"

// Session represents the per-user form state. One session exists per
// {platform, user}; it is created on first interaction and discarded on
// the terminal transition or replaced on restart.
type Session struct {
	Platform    string         `json:"platform" bson:"platform"`
	UserID      string         `json:"user_id" bson:"user_id"`
	ChatID      string         `json:"chat_id" bson:"chat_id"`
	Handle      string         `json:"handle" bson:"handle"`
	WorkflowID  WorkflowID     `json:"workflow_id" bson:"workflow_id"`
	CurrentStep StepID         `json:"current_step" bson:"current_step"`
	Data        map[string]any `json:"data" bson:"data"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

// NewSession creates a new Session positioned at the given step. handle is
// the user's optional public display handle, kept for the final record.
func NewSession(platform, userID, chatID, handle string, workflowID WorkflowID, initialStep StepID) *Session {
	return &Session{
		Platform:    platform,
		UserID:      userID,
		ChatID:      chatID,
		Handle:      handle,
		WorkflowID:  workflowID,
		CurrentStep: initialStep,
		Data:        make(map[string]any),
		UpdatedAt:   time.Now(),
	}
}

// GetString retrieves a string value from the session data.
func (s *Session) GetString(key string) string {
	if v, ok := s.Data[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// GetInt retrieves an integer value from the session data.
func (s *Session) GetInt(key string) int {
	if v, ok := s.Data[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case int32:
			return int(val)
		case int64:
			return int(val)
		case float64:
			return int(val)
		}
	}
	return 0
}

// Has reports whether a value has been collected for the key.
func (s *Session) Has(key string) bool {
	_, ok := s.Data[key]
	return ok
}

// Set stores a value in the session data.
func (s *Session) Set(key string, value any) {
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// MergeData merges additional data into the session.
func (s *Session) MergeData(data map[string]any) {
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	for k, v := range data {
		s.Data[k] = v
	}
}
