package github

// ReposListInput for GET /profile/github/{username}
type ReposListInput struct {
	Username string `path:"username" doc:"GitHub username" example:"octocat" pattern:"^[a-zA-Z0-9][a-zA-Z0-9\\-]{0,38}$"`
}

// Repo is a public repository shown on a developer profile.
type Repo struct {
	Name        string `json:"name"                  doc:"Repository name"        example:"Hello-World"`
	FullName    string `json:"fullName"              doc:"Owner and name"         example:"octocat/Hello-World"`
	Description string `json:"description,omitempty" doc:"Repository description"`
	HTMLURL     string `json:"htmlUrl"               doc:"Repository page"        example:"https://github.com/octocat/Hello-World"`
	Language    string `json:"language,omitempty"    doc:"Primary language"       example:"Go"`
	Stars       int    `json:"stars"                 doc:"Stargazers"`
	Watchers    int    `json:"watchers"              doc:"Watchers"`
	Forks       int    `json:"forks"                 doc:"Forks"`
}

// ReposListOutput for GET /profile/github/{username}
type ReposListOutput struct {
	Body []Repo
}
