// Package models holds the data shared between the upload stages and the
// JSON printed by the commands.
package models

import "strings"

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

// HostTarget identifies the remote canvas. BaseURL carries no trailing slash.
type HostTarget struct {
	BaseURL string `json:"base_url"`
	Canvas  string `json:"canvas"`
}

func NewHostTarget(baseURL, canvas string) HostTarget {
	return HostTarget{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Canvas:  canvas,
	}
}

func (h HostTarget) AuthURL() string {
	return h.BaseURL + "/a/" + h.Canvas
}

func (h HostTarget) AssetsURL() string {
	return h.BaseURL + "/api/" + h.Canvas + "/static_assets"
}

// Session is valid for a single invocation and never refreshed.
type Session struct {
	Cookie    string
	CSRFToken string
}

type SessionInfo struct {
	Canvas        string `json:"canvas"`
	AuthURL       string `json:"auth_url"`
	CookieName    string `json:"cookie_name"`
	CSRFToken     string `json:"csrf_token"`
	OperationTime string `json:"operation_time"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}
