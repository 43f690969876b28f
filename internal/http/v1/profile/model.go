package profile

import (
	"github.com/janisto/devconnector-api/internal/platform/timeutil"
	profilesvc "github.com/janisto/devconnector-api/internal/service/profile"
)

// User is the profile owner as shown alongside a profile.
type User struct {
	ID     string `json:"id"               doc:"User identifier" example:"5f8d0d55b54764421b7156c9"`
	Name   string `json:"name,omitempty"   doc:"Display name"    example:"Ada Lovelace"`
	Avatar string `json:"avatar,omitempty" doc:"Avatar URL"      example:"https://example.com/ada.png"`
}

// Profile is a developer profile response.
type Profile struct {
	ID             string            `json:"id"                       doc:"Profile identifier"                   example:"5f8d0d55b54764421b7156c9"`
	User           User              `json:"user"                     doc:"Profile owner"`
	Status         string            `json:"status"                   doc:"Professional status"                  example:"Senior Developer"`
	Company        string            `json:"company,omitempty"        doc:"Company"                              example:"Analytical Engines"`
	Website        string            `json:"website,omitempty"        doc:"Personal website"                     example:"https://ada.dev"`
	Location       string            `json:"location,omitempty"       doc:"Location"                             example:"London"`
	Bio            string            `json:"bio,omitempty"            doc:"Short biography"`
	GitHubUsername string            `json:"githubusername,omitempty" doc:"GitHub username"                      example:"octocat"`
	Skills         []string          `json:"skills"                   doc:"Skills, in the order given"           example:"[\"go\",\"sql\"]"`
	Social         map[string]string `json:"social"                   doc:"Social links keyed by platform name"`
	CreatedAt      timeutil.Time     `json:"createdAt"                doc:"Creation timestamp"                   example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt      timeutil.Time     `json:"updatedAt"                doc:"Last update timestamp"                example:"2024-01-15T10:30:00.000Z"`
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	social := p.Social
	if social == nil {
		social = map[string]string{}
	}
	return Profile{
		ID: p.ID,
		User: User{
			ID:     p.User.ID,
			Name:   p.User.Name,
			Avatar: p.User.Avatar,
		},
		Status:         p.Status,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		GitHubUsername: p.GitHubUsername,
		Skills:         skills,
		Social:         social,
		CreatedAt:      timeutil.Time{Time: p.CreatedAt},
		UpdatedAt:      timeutil.Time{Time: p.UpdatedAt},
	}
}
