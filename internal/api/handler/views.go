package handler

import "github.com/bullyguard/bullyguard/internal/core/domain"

// --- Form schemas ---

type credentialsForm struct {
	Username string `form:"user" label:"username" validate:"required,max=64"`
	Password string `form:"pw"   label:"password" validate:"required,max=72"`
}

type predictForm struct {
	Text string `form:"text"`
}

// --- Views ---

// Page carries the fields the shared layout reads.
type Page struct {
	Title         string
	Authenticated bool
	Error         string
}

type credentialsView struct {
	Page
	Username string
}

type predictView struct {
	Page
	Text       string
	Result     string
	LabelClass string
	Confidence float64
	Steps      []string
}

type historyView struct {
	Page
	Records []*domain.HistoryRecord
}

type analyticsView struct {
	Page
	Analytics *domain.Analytics
}
