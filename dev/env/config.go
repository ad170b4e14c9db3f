package devenv

// LinkedinTestConfig is read from dev/.state/linkedin_test.json5 by the live
// tests. They skip when it is missing.
type LinkedinTestConfig struct {
	LiAt       string `json:"li_at"`
	JSessionID string `json:"jsessionid"`
	// PublicID is a profile handle the session can see, used as the target of
	// profile lookups.
	PublicID string `json:"public_id"`
	// Company is a universal name to look up.
	Company string `json:"company"`
	// School is a universal name to look up.
	School string `json:"school"`
}

const LinkedinTestConfigFile = "linkedin_test.json5"

const linkedinTestConfigTemplate = `{
  // session cookies copied from a logged in browser
  li_at: "${LI_AT}",
  jsessionid: "${JSESSIONID}",
  public_id: "",
  company: "",
  school: "",
}
`
