package service

import (
	"fmt"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/repository"
)

// ParticipantResolver maps an opaque (id, kind) reference to a concrete
// account. Every messaging operation runs its participant references
// through this gate before trusting them; the resolver itself holds no
// mutable state.
type ParticipantResolver interface {
	Resolve(ref domain.ParticipantRef) (*domain.Account, error)
	// Validate checks that the reference points at an active account
	// without loading the row.
	Validate(ref domain.ParticipantRef) error
}

type participantResolver struct {
	students repository.StudentRepository
	mentors  repository.MentorRepository
}

// NewParticipantResolver creates a new ParticipantResolver
func NewParticipantResolver(students repository.StudentRepository, mentors repository.MentorRepository) ParticipantResolver {
	return &participantResolver{students: students, mentors: mentors}
}

// Resolve validates the kind tag and looks up the backing account row
func (r *participantResolver) Resolve(ref domain.ParticipantRef) (*domain.Account, error) {
	switch ref.Kind {
	case domain.KindStudent:
		s, err := r.students.FindByID(ref.ID)
		if err != nil {
			return nil, err
		}
		return s.ToAccount(), nil
	case domain.KindMentor:
		m, err := r.mentors.FindByID(ref.ID)
		if err != nil {
			return nil, err
		}
		return m.ToAccount(), nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidKind, ref.Kind)
	}
}

// Validate checks existence through the cheaper count path
func (r *participantResolver) Validate(ref domain.ParticipantRef) error {
	var (
		ok  bool
		err error
	)
	switch ref.Kind {
	case domain.KindStudent:
		ok, err = r.students.Exists(ref.ID)
	case domain.KindMentor:
		ok, err = r.mentors.Exists(ref.ID)
	default:
		return fmt.Errorf("%w: %q", common.ErrInvalidKind, ref.Kind)
	}
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrAccountNotFound
	}
	return nil
}
