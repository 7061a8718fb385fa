package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devicehub/internal/domain"
	"devicehub/internal/dto"
	"devicehub/internal/store"
)

// UserService owns user and admin-flag rows. Admin capability is the
// existence of a row in the admins table, never a column on the user.
type UserService struct {
	store  *store.Store
	hasher PasswordHasher
}

func NewUserService(st *store.Store, hasher PasswordHasher) *UserService {
	return &UserService{store: st, hasher: hasher}
}

// Register hashes the password and creates the user row — plus the admin-flag
// row when requested — in one transaction. A duplicate email surfaces as a
// conflict and leaves nothing behind.
func (s *UserService) Register(ctx context.Context, req dto.RegisterUserRequest) (dto.UserResponse, error) {
	if len(strings.TrimSpace(req.Name)) < 3 {
		return dto.UserResponse{}, fmt.Errorf("%w: nombre must be at least 3 characters", ErrInvalidRequest)
	}
	if !strings.ContainsRune(req.Email, '@') {
		return dto.UserResponse{}, fmt.Errorf("%w: invalid email", ErrInvalidRequest)
	}
	if len(req.Password) < 6 {
		return dto.UserResponse{}, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidRequest)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := domain.User{Name: req.Name, Email: req.Email, Password: hashed}
	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.Users().Create(ctx, &user); err != nil {
			return err
		}
		if req.IsAdmin {
			return tx.Admins().Grant(ctx, user.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return dto.UserResponse{}, fmt.Errorf("%w: email %s is already registered", ErrConflict, req.Email)
		}
		return dto.UserResponse{}, fmt.Errorf("%w: could not save user", ErrConflict)
	}

	return dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, IsAdmin: req.IsAdmin}, nil
}

// Authenticate verifies credentials. Unknown emails and wrong passwords fail
// differently on purpose; that is the original API contract.
func (s *UserService) Authenticate(ctx context.Context, req dto.LoginRequest) (dto.UserResponse, error) {
	user, err := s.store.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return dto.UserResponse{}, fmt.Errorf("%w: no account registered for %s", ErrNotFound, req.Email)
		}
		return dto.UserResponse{}, err
	}
	if !s.hasher.Verify(req.Password, user.Password) {
		return dto.UserResponse{}, fmt.Errorf("%w: wrong password", ErrUnauthorized)
	}
	return s.respond(ctx, user)
}

func (s *UserService) Get(ctx context.Context, id uint) (dto.UserResponse, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return dto.UserResponse{}, fmt.Errorf("%w: no user with id %d", ErrNotFound, id)
		}
		return dto.UserResponse{}, err
	}
	return s.respond(ctx, user)
}

// List returns full user entities; projection down to the requested fields is
// the boundary layer's job. Passwords never serialize either way.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.store.Users().List(ctx)
}

// Update changes name and, when supplied, password. Email is immutable
// through this path: a differing email is refused, not silently ignored.
func (s *UserService) Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (dto.UserResponse, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return dto.UserResponse{}, fmt.Errorf("%w: no user with id %d", ErrNotFound, id)
		}
		return dto.UserResponse{}, err
	}
	if req.Email != user.Email {
		return dto.UserResponse{}, fmt.Errorf("%w: email cannot be changed through this operation", ErrForbidden)
	}

	user.Name = req.Name
	if req.Password != "" {
		hashed, err := s.hasher.Hash(req.Password)
		if err != nil {
			return dto.UserResponse{}, err
		}
		user.Password = hashed
	}

	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		return tx.Users().Update(ctx, user)
	})
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("%w: could not update user %s", ErrConflict, user.Email)
	}
	return s.respond(ctx, user)
}

// Promote grants the admin flag to the target. Re-promoting an admin is an
// error, not a no-op.
func (s *UserService) Promote(ctx context.Context, requesterID, targetID uint) (dto.UserResponse, error) {
	requesterIsAdmin, err := s.store.Admins().Exists(ctx, requesterID)
	if err != nil {
		return dto.UserResponse{}, err
	}
	if !requesterIsAdmin {
		return dto.UserResponse{}, fmt.Errorf("%w: admin rights are required to promote a user", ErrUnauthorized)
	}

	user, err := s.store.Users().GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return dto.UserResponse{}, fmt.Errorf("%w: no user with id %d", ErrNotFound, targetID)
		}
		return dto.UserResponse{}, err
	}

	targetIsAdmin, err := s.store.Admins().Exists(ctx, targetID)
	if err != nil {
		return dto.UserResponse{}, err
	}
	if targetIsAdmin {
		return dto.UserResponse{}, fmt.Errorf("%w: user %d is already an admin", ErrConflict, targetID)
	}

	if err := s.store.Admins().Grant(ctx, targetID); err != nil {
		return dto.UserResponse{}, fmt.Errorf("%w: could not promote user %d", ErrConflict, targetID)
	}
	return dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, IsAdmin: true}, nil
}

// Remove deletes the admin flag (if any) and then the user row in one
// transaction, returning the user with its last-known admin state.
func (s *UserService) Remove(ctx context.Context, id uint) (dto.UserResponse, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return dto.UserResponse{}, fmt.Errorf("%w: the user does not exist or was already removed", ErrNotFound)
		}
		return dto.UserResponse{}, err
	}
	wasAdmin, err := s.store.Admins().Exists(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if wasAdmin {
			if err := tx.Admins().Revoke(ctx, id); err != nil {
				return err
			}
		}
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("%w: could not remove user %s", ErrConflict, user.Email)
	}
	return dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, IsAdmin: wasAdmin}, nil
}

func (s *UserService) respond(ctx context.Context, user *domain.User) (dto.UserResponse, error) {
	isAdmin, err := s.store.Admins().Exists(ctx, user.ID)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, IsAdmin: isAdmin}, nil
}
