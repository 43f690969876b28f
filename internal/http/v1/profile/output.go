package profile

// ProfileOutput carries a single profile.
type ProfileOutput struct {
	Body Profile
}

// ProfileListOutput for GET /profile
type ProfileListOutput struct {
	Body []Profile
}
