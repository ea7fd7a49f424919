package myaffiliates

import "encoding/base64"

// BasicAuth builds the Authorization header value for a feed's HTTP Basic
// credentials.
func BasicAuth(username, password string) string {
	creds := username + ":" + password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
}
