// Package grid configures sessions on a hosted Selenium grid.
package grid

import (
	"encoding/json"
	"fmt"
)

// Addr returns the authenticated hub URL for driving browsers on host.
func Addr(host, userName, accessKey string) string {
	return fmt.Sprintf("http://%s:%s@%s/wd/hub", userName, accessKey, host)
}

// Visibility is a visibility level for a grid job.
type Visibility string

const (
	// Public jobs are accessible to everyone.
	Public Visibility = "public"
	// Team jobs are accessible to accounts under the same root account.
	Team Visibility = "team"
	// Private jobs are accessible only to their owner.
	Private Visibility = "private"
)

// Options carries the job metadata and limits a hosted grid accepts
// alongside the standard session capabilities. Merge them into a session via
// ToMap and Config.Extra.
type Options struct {
	// Name identifies the job in the grid's UI.
	Name string `json:"name,omitempty"`
	// Build associates the job with a build number or application version.
	Build string `json:"build,omitempty"`
	// Tags group and filter jobs.
	Tags []string `json:"tags,omitempty"`

	// MaxDuration is the maximum test duration to allow, in seconds.
	MaxDuration int `json:"maxDuration,omitempty"`
	// CommandTimeout is the maximum time a single command may run in the
	// browser, in seconds.
	CommandTimeout int `json:"commandTimeout,omitempty"`
	// IdleTimeout is the maximum time to wait for a new command, in seconds.
	IdleTimeout int `json:"idleTimeout,omitempty"`

	// Visibility of the job results.
	Visibility Visibility `json:"public,omitempty"`

	// RecordVideo, when set to false, disables video recording of the job.
	RecordVideo *bool `json:"recordVideo,omitempty"`
	// RecordScreenshots, when set to false, disables step screenshots.
	RecordScreenshots *bool `json:"recordScreenshots,omitempty"`
	// RecordLogs, when set to false, disables log recording.
	RecordLogs *bool `json:"recordLogs,omitempty"`
}

// ToMap returns the options in the key/value structure expected in session
// capabilities.
func (o *Options) ToMap() (map[string]interface{}, error) {
	buf, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	m := make(map[string]interface{})
	if err := json.Unmarshal(buf, &m); err != nil {
		return nil, err
	}
	return m, nil
}
