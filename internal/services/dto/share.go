package dto

// --- Share Requests ---

type UnlockRequest struct {
	JobID        string  `json:"jobId" validate:"required,uuid4"`
	ShareType    string  `json:"shareType" validate:"required,is-share-type"`
	ShareChannel *string `json:"shareChannel,omitempty" validate:"omitempty,max=64"`
}

type CheckRequest struct {
	JobID string `json:"jobId" validate:"required,uuid4"`
}

// --- Share Responses ---

// UnlockResponse mirrors the persisted wire contract: shareId is null
// when the job was already free (published today), so no ledger record
// was written.
type UnlockResponse struct {
	Unlocked   bool    `json:"unlocked"`
	ShareID    *string `json:"shareId"`
	UnlockDate string  `json:"unlockDate"`
}

type CheckResponse struct {
	Unlocked  bool `json:"unlocked"`
	NeedShare bool `json:"needShare"`
	IsToday   bool `json:"isToday"`
}

type ShareHistoryItem struct {
	ShareID      string  `json:"shareId"`
	JobID        string  `json:"jobId"`
	UnlockDay    string  `json:"unlockDay"`
	ShareType    string  `json:"shareType"`
	ShareChannel *string `json:"shareChannel,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}
