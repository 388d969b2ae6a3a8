package handlers

import (
	"fmt"
	"net/http"
	"runtime"
)

// VersionInfo carries build identification injected from main.
type VersionInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// VersionResponse represents the version information response.
type VersionResponse struct {
	App     AppInfo     `json:"app"`
	Runtime RuntimeInfo `json:"runtime"`
}

// AppInfo contains application version details.
type AppInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// RuntimeInfo contains runtime environment information.
type RuntimeInfo struct {
	Platform      string `json:"platform"`
	NumCPU        int    `json:"num_cpu"`
	NumGoroutines int    `json:"num_goroutines"`
}

// VersionHandler returns a handler reporting the injected build info.
func VersionHandler(info VersionInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, VersionResponse{
			App: AppInfo{
				Name:      "adlens",
				Version:   info.Version,
				Commit:    info.Commit,
				BuildDate: info.BuildDate,
				GoVersion: runtime.Version(),
			},
			Runtime: RuntimeInfo{
				Platform:      fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
				NumCPU:        runtime.NumCPU(),
				NumGoroutines: runtime.NumGoroutine(),
			},
		})
	}
}
