package models

import "time"

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

type DatabaseHealth struct {
	Status         string          `json:"status"`
	Database       string          `json:"database"`
	Services       map[string]bool `json:"services"`
	AllTestsPassed bool            `json:"allTestsPassed"`
	Timestamp      time.Time       `json:"timestamp"`
}

type Diagnostics struct {
	Server   ServerDiagnostics   `json:"server"`
	Supabase SupabaseDiagnostics `json:"supabase"`
	CORS     CORSDiagnostics     `json:"cors"`
	Tests    DiagnosticTests     `json:"tests"`
}

type ServerDiagnostics struct {
	NodeEnv       string    `json:"nodeEnv"`
	Port          int       `json:"port"`
	IsDevelopment bool      `json:"isDevelopment"`
	Uptime        float64   `json:"uptime"`
	Timestamp     time.Time `json:"timestamp"`
}

type SupabaseDiagnostics struct {
	URL           string `json:"url"`
	HasAnonKey    bool   `json:"hasAnonKey"`
	HasServiceKey bool   `json:"hasServiceKey"`
	URLType       string `json:"urlType"`
}

type CORSDiagnostics struct {
	Origins []string `json:"origins"`
}

type DiagnosticTests struct {
	BasicConnection *bool        `json:"basicConnection,omitempty"`
	TableAccess     *TableAccess `json:"tableAccess,omitempty"`
	Error           string       `json:"error,omitempty"`
}

type TableAccess struct {
	PermitRules            bool    `json:"permitRules"`
	RequiredDocuments      bool    `json:"requiredDocuments"`
	PermitRulesError       *string `json:"permitRulesError"`
	RequiredDocumentsError *string `json:"requiredDocumentsError"`
}
