package config

// DefaultBoilerplatePhrases returns the built-in list of UI, navigation,
// legal, and social phrases removed from cleaned article text. Overridable
// via cleaner.boilerplatePhrases in the YAML config.
func DefaultBoilerplatePhrases() []string {
	return []string{
		"privacy policy", "terms of service", "advertisement", "advertising policy",
		"subscribe", "sign up", "sign in", "accept cookies", "related stories",
		"read next", "newsletter", "share this", "follow us", "menu", "footer",
		"header", "disclaimer", "cookies", "back to top", "most popular",
		"trending", "click here", "variety", "robb report", "futurism",
		"9to5mac", "pmc", "about us", "contact us", "donate", "help", "jobs",
		"site protected", "©", "202", "facebook", "instagram", "twitter",
		"linkedin", "reddit", "bluesky", "youtube", "x ", "get the magazine",
		"continue", "resend code", "forgot password", "email address",
		"submit an event", "search for", "open dropdown", "read more",
		"close advert", "newsletter signup", "advertise with us",
	}
}
