package profile

import "strings"

// Field names accepted on the profile write request.
const (
	FieldCompany        = "company"
	FieldWebsite        = "website"
	FieldLocation       = "location"
	FieldBio            = "bio"
	FieldStatus         = "status"
	FieldGitHubUsername = "githubusername"
	FieldSkills         = "skills"
	FieldYouTube        = "youtube"
	FieldFacebook       = "facebook"
	FieldTwitter        = "twitter"
	FieldInstagram      = "instagram"
	FieldLinkedIn       = "linkedin"
)

type strategy int

const (
	scalarCopy strategy = iota + 1
	socialNest
	skillsSplit
)

var fieldStrategies = map[string]strategy{
	FieldCompany:        scalarCopy,
	FieldWebsite:        scalarCopy,
	FieldLocation:       scalarCopy,
	FieldBio:            scalarCopy,
	FieldStatus:         scalarCopy,
	FieldGitHubUsername: scalarCopy,
	FieldSkills:         skillsSplit,
	FieldYouTube:        socialNest,
	FieldFacebook:       socialNest,
	FieldTwitter:        socialNest,
	FieldInstagram:      socialNest,
	FieldLinkedIn:       socialNest,
}

// Recognized reports whether name is a profile input field.
func Recognized(name string) bool {
	_, ok := fieldStrategies[name]
	return ok
}

// Update is a normalized profile write. Only populated fields are stored.
type Update struct {
	User    User
	Scalars map[string]string
	// Skills is nil when the input carried no skills field.
	Skills []string
	Social map[string]string
}

// Normalize turns raw request fields into an Update for owner. Unknown
// fields are dropped, social platforms are nested under Social, and skills
// is split on commas with each segment trimmed. Empty segments are kept,
// so "a,,b" yields ["a", "", "b"].
func Normalize(owner User, fields map[string]string) Update {
	u := Update{
		User:    owner,
		Scalars: make(map[string]string),
		Social:  make(map[string]string),
	}
	for name, value := range fields {
		switch fieldStrategies[name] {
		case scalarCopy:
			u.Scalars[name] = value
		case socialNest:
			u.Social[name] = value
		case skillsSplit:
			u.Skills = SplitSkills(value)
		}
	}
	return u
}

// SplitSkills splits a comma-separated skills string and trims each segment.
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// apply writes u onto p in place.
func (u Update) apply(p *Profile) {
	for name, value := range u.Scalars {
		switch name {
		case FieldCompany:
			p.Company = value
		case FieldWebsite:
			p.Website = value
		case FieldLocation:
			p.Location = value
		case FieldBio:
			p.Bio = value
		case FieldStatus:
			p.Status = value
		case FieldGitHubUsername:
			p.GitHubUsername = value
		}
	}
	if u.Skills != nil {
		p.Skills = append([]string(nil), u.Skills...)
	}
	if p.Social == nil {
		p.Social = make(map[string]string, len(u.Social))
	}
	for k, v := range u.Social {
		p.Social[k] = v
	}
}
