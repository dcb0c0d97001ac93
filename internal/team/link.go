package team

import "net/url"

// QueryParam is the query parameter that carries a token in share links.
const QueryParam = "team"

// ShareURL sets token as the QueryParam of base, keeping other parameters.
func ShareURL(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(QueryParam, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
