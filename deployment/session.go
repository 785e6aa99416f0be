package deployment

// Session is the configuration gathered once per interactive run. Every
// Request of the batch is derived from it.
type Session struct {
	Action     Action
	Email      string
	UseCookies bool
	ProxyURL   string
	SourcePath string
}

func NewSession(action Action, email, proxyURL, sourcePath string) Session {
	return Session{
		Action:     action,
		Email:      email,
		UseCookies: email == "",
		ProxyURL:   proxyURL,
		SourcePath: sourcePath,
	}
}

func (s Session) Request(appID string) Request {
	baseID, version := SplitAppID(appID)

	return Request{
		AppID:      appID,
		BaseID:     baseID,
		Version:    version,
		Action:     s.Action,
		SourcePath: s.SourcePath,
		Email:      s.Email,
		UseCookies: s.UseCookies,
		ProxyURL:   s.ProxyURL,
	}
}

func (s Session) Requests(appIDs []string) []Request {
	var requests []Request
	for _, appID := range appIDs {
		requests = append(requests, s.Request(appID))
	}
	return requests
}
