// Package api defines the request and response bodies shared by the HTTP and gRPC transports.
package api

import "time"

// GenerateRequest is the body of POST /generate-password and the gRPC Generate call.
type GenerateRequest struct {
	Length         int    `json:"length"`
	Uppercase      bool   `json:"uppercase"`
	Lowercase      bool   `json:"lowercase"`
	Numbers        bool   `json:"numbers"`
	Symbols        bool   `json:"symbols"`
	ExcludeSimilar bool   `json:"excludeSimilar"`
	CustomSymbols  string `json:"customSymbols,omitempty"`

	Mode       string `json:"mode,omitempty"`
	WordCount  int    `json:"wordCount,omitempty"`
	Separator  string `json:"separator,omitempty"`
	Capitalize bool   `json:"capitalize,omitempty"`
}

// PassphraseRequest is the body of POST /passphrase.
type PassphraseRequest struct {
	WordCount  int    `json:"wordCount"`
	Separator  string `json:"separator,omitempty"`
	Capitalize bool   `json:"capitalize"`
}

// GenerateResponse carries the new credential.
type GenerateResponse struct {
	Password              string          `json:"password"`
	ID                    string          `json:"id"`
	Mode                  string          `json:"mode"`
	CreatedAt             time.Time       `json:"createdAt"`
	Strength              *StrengthReport `json:"strength,omitempty"`
	PassphraseEntropyBits float64         `json:"passphraseEntropyBits,omitempty"`
}

// EvaluateRequest is the body of POST /evaluate.
type EvaluateRequest struct {
	Password string `json:"password"`
}

// StrengthReport mirrors model.StrengthReport on the wire.
type StrengthReport struct {
	CategoryScore     int      `json:"categoryScore"`
	LengthBonus       int      `json:"lengthBonus"`
	TotalScore        int      `json:"totalScore"`
	EntropyBits       float64  `json:"entropyBits"`
	UniqueEntropyBits float64  `json:"uniqueEntropyBits"`
	CrackTime         string   `json:"crackTime"`
	CrackTimeBucket   int      `json:"crackTimeBucket"`
	Label             string   `json:"label"`
	Persona           string   `json:"persona"`
	Feedback          []string `json:"feedback"`
	IsCommon          bool     `json:"isCommon"`
	CommonPattern     string   `json:"commonPattern,omitempty"`
}

// SessionRequest is empty; it exists so every RPC has a request type.
type SessionRequest struct{}

// SessionResponse carries a new session token.
type SessionResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HistoryRequest is empty; the session comes from the bearer token.
type HistoryRequest struct{}

// HistoryItem is one history entry.
type HistoryItem struct {
	ID        string    `json:"id"`
	Password  string    `json:"password"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryResponse lists entries newest first.
type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
}

// ClearHistoryResponse is empty.
type ClearHistoryResponse struct{}

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
