package flows

import "context"

// LoginFailureKind classifies login flow failures for root-level mapping.
type LoginFailureKind int

const (
	LoginFailureNone LoginFailureKind = iota
	LoginFailureCredentials
	LoginFailureIssue
	LoginFailureStore
)

// LoginResult carries either the issued token pair or failure metadata.
type LoginResult struct {
	Failure      LoginFailureKind
	Err          error
	UserID       string
	AccessToken  string
	RefreshToken string
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	// LookupCredentials resolves an email to (userID, passwordHash). found is
	// false when no such user exists; err is reserved for storage faults.
	LookupCredentials func(ctx context.Context, email string) (userID, passwordHash string, found bool, err error)
	VerifyPassword    func(password, hash string) (bool, error)
	IssueAccess       func(userID string) (string, error)
	IssueRefresh      func(userID string) (string, error)
	SaveSession       func(ctx context.Context, userID, refreshToken string) error
}

// RunLogin verifies credentials, issues a fresh token pair, and records the
// refresh token as the user's single active session. Unknown email and wrong
// password produce the same failure kind so the outcome leaks nothing about
// which one it was.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) LoginResult {
	userID, hash, found, err := deps.LookupCredentials(ctx, email)
	if err != nil {
		return LoginResult{Failure: LoginFailureStore, Err: err}
	}
	if !found {
		return LoginResult{Failure: LoginFailureCredentials}
	}

	ok, err := deps.VerifyPassword(password, hash)
	if err != nil || !ok {
		return LoginResult{
			Failure: LoginFailureCredentials,
			Err:     err,
			UserID:  userID,
		}
	}

	access, err := deps.IssueAccess(userID)
	if err != nil {
		return LoginResult{Failure: LoginFailureIssue, Err: err, UserID: userID}
	}
	refresh, err := deps.IssueRefresh(userID)
	if err != nil {
		return LoginResult{Failure: LoginFailureIssue, Err: err, UserID: userID}
	}

	if err := deps.SaveSession(ctx, userID, refresh); err != nil {
		return LoginResult{Failure: LoginFailureStore, Err: err, UserID: userID}
	}

	return LoginResult{
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
	}
}
