package flows

import "context"

// RegisterFailureKind classifies registration flow failures for root-level
// mapping.
type RegisterFailureKind int

const (
	RegisterFailureNone RegisterFailureKind = iota
	RegisterFailureDuplicate
	RegisterFailureHash
	RegisterFailureStore
)

// RegisterResult carries the new user's identifier or failure metadata.
type RegisterResult struct {
	Failure RegisterFailureKind
	Err     error
	UserID  string
}

// RegisterDeps captures registration flow dependencies.
type RegisterDeps struct {
	EmailTaken   func(ctx context.Context, email string) (bool, error)
	HashPassword func(password string) (string, error)
	NewUserID    func() string
	CreateUser   func(ctx context.Context, userID, email, passwordHash, name string) error
}

// RunRegister creates a new account when the email is unclaimed. The
// duplicate check happens before any hashing work so rejected attempts stay
// cheap.
func RunRegister(ctx context.Context, email, password, name string, deps RegisterDeps) RegisterResult {
	taken, err := deps.EmailTaken(ctx, email)
	if err != nil {
		return RegisterResult{Failure: RegisterFailureStore, Err: err}
	}
	if taken {
		return RegisterResult{Failure: RegisterFailureDuplicate}
	}

	hash, err := deps.HashPassword(password)
	if err != nil {
		return RegisterResult{Failure: RegisterFailureHash, Err: err}
	}

	userID := deps.NewUserID()
	if err := deps.CreateUser(ctx, userID, email, hash, name); err != nil {
		return RegisterResult{Failure: RegisterFailureStore, Err: err}
	}

	return RegisterResult{UserID: userID}
}
