package deployment

import "strings"

const (
	httpProxyEnv  = "http_proxy"
	httpsProxyEnv = "https_proxy"
)

// Request is a single appcfg invocation for one app id.
type Request struct {
	AppID      string
	BaseID     string
	Version    string
	Action     Action
	SourcePath string
	Email      string
	UseCookies bool
	ProxyURL   string
}

// Args builds the appcfg argument vector:
//   --skip_sdk_update_check <action> <source> [-e <email> --no_cookies] -A <id> [-V <version>]
func (r Request) Args() []string {
	args := []string{"--skip_sdk_update_check", r.Action.String(), r.SourcePath}

	if !r.UseCookies && r.Email != "" {
		args = append(args, "-e", r.Email, "--no_cookies")
	}

	args = append(args, "-A", r.BaseID)
	if r.Version != "" {
		args = append(args, "-V", r.Version)
	}

	return args
}

// Env is the environment handed to the appcfg process on top of the
// driver's own environment.
func (r Request) Env() map[string]string {
	env := map[string]string{}
	if r.ProxyURL != "" {
		env[httpProxyEnv] = r.ProxyURL
		env[httpsProxyEnv] = r.ProxyURL
	}
	return env
}

// ParseAppIDs splits a comma separated line of app ids, keeping input order
// and duplicates and dropping blank entries.
func ParseAppIDs(line string) []string {
	appIDs := []string{}
	for _, appID := range strings.Split(line, ",") {
		appID = strings.TrimSpace(appID)
		if appID == "" {
			continue
		}
		appIDs = append(appIDs, appID)
	}
	return appIDs
}

// SplitAppID recognises only "id.version". Any other number of dots leaves
// the id untouched with no version.
func SplitAppID(appID string) (string, string) {
	parts := strings.Split(appID, ".")
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return appID, ""
}
