package profile

import profilesvc "github.com/janisto/devconnector-api/internal/service/profile"

// ProfileUpsertBody is the POST /profile payload. Every field is a string;
// skills is comma-separated. Unknown fields are accepted and ignored, and a
// null body is accepted so that it reaches field validation.
type ProfileUpsertBody struct {
	_ struct{} `json:"-" additionalProperties:"true" nullable:"true"`

	Status         *string `json:"status,omitempty"         doc:"Professional status (required)"     example:"Senior Developer"`
	Skills         *string `json:"skills,omitempty"         doc:"Comma-separated skills (required)"  example:"go, sql, kubernetes"`
	Company        *string `json:"company,omitempty"        doc:"Company"                            example:"Analytical Engines"`
	Website        *string `json:"website,omitempty"        doc:"Personal website"                   example:"https://ada.dev"`
	Location       *string `json:"location,omitempty"       doc:"Location"                           example:"London"`
	Bio            *string `json:"bio,omitempty"            doc:"Short biography"`
	GitHubUsername *string `json:"githubusername,omitempty" doc:"GitHub username"                    example:"octocat"`
	YouTube        *string `json:"youtube,omitempty"        doc:"YouTube channel URL"`
	Twitter        *string `json:"twitter,omitempty"        doc:"Twitter profile URL"`
	Facebook       *string `json:"facebook,omitempty"       doc:"Facebook profile URL"`
	LinkedIn       *string `json:"linkedin,omitempty"       doc:"LinkedIn profile URL"`
	Instagram      *string `json:"instagram,omitempty"      doc:"Instagram profile URL"`
}

// fields returns the recognized fields present in the request.
func (b *ProfileUpsertBody) fields() map[string]string {
	present := make(map[string]string)
	if b == nil {
		return present
	}
	for name, v := range map[string]*string{
		profilesvc.FieldStatus:         b.Status,
		profilesvc.FieldSkills:         b.Skills,
		profilesvc.FieldCompany:        b.Company,
		profilesvc.FieldWebsite:        b.Website,
		profilesvc.FieldLocation:       b.Location,
		profilesvc.FieldBio:            b.Bio,
		profilesvc.FieldGitHubUsername: b.GitHubUsername,
		profilesvc.FieldYouTube:        b.YouTube,
		profilesvc.FieldTwitter:        b.Twitter,
		profilesvc.FieldFacebook:       b.Facebook,
		profilesvc.FieldLinkedIn:       b.LinkedIn,
		profilesvc.FieldInstagram:      b.Instagram,
	} {
		if v != nil {
			present[name] = *v
		}
	}
	return present
}

// ProfileUpsertInput for POST /profile. The body is optional so an empty or
// null payload fails field validation instead of body decoding.
type ProfileUpsertInput struct {
	Body *ProfileUpsertBody
}

// ProfileMeInput for GET /profile/me
type ProfileMeInput struct{}

// ProfileListInput for GET /profile
type ProfileListInput struct{}

// ProfileByUserInput for GET /profile/user/{userId}
type ProfileByUserInput struct {
	UserID string `path:"userId" doc:"Owner's user ID" example:"5f8d0d55b54764421b7156c9"`
}
