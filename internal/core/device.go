package core

// Device represents a playback device attached to the server.
type Device struct {
	Ref       string `json:"ref"`
	Name      string `json:"name"`
	Model     string `json:"model"`
	Addr      string `json:"addr"`
	Connected bool   `json:"connected"`
}
