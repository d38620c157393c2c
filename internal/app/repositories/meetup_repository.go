package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/middleway/middleway/internal/app/models"
	"github.com/middleway/middleway/internal/db"
	"github.com/middleway/middleway/internal/pkg/apperrors"
)

// IMeetupRepository defines the interface for meetup database operations
type IMeetupRepository interface {
	Create(ctx context.Context, meetup *models.Meetup, participants []*models.MeetupParticipant) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Meetup, error)
	ListForUser(ctx context.Context, userID int64) ([]*models.Meetup, error)
	ListAll(ctx context.Context) ([]*models.Meetup, error)
	Update(ctx context.Context, meetup *models.Meetup) error
	Delete(ctx context.Context, id int64) error
	GetParticipant(ctx context.Context, meetupID, userID int64) (*models.MeetupParticipant, error)
	SetParticipantStatus(ctx context.Context, meetupID, userID int64, status models.ParticipantStatus) error
}

// MeetupRepository handles database operations for meetups and their participants
type MeetupRepository struct {
	db *pgxpool.Pool
}

// NewMeetupRepository creates a new MeetupRepository
func NewMeetupRepository(pool *pgxpool.Pool) *MeetupRepository {
	return &MeetupRepository{db: pool}
}

var meetupSelect = squirrel.Select(
	"m.id", "m.creator_id", "m.title", "m.description",
	"m.location_name", "m.location_address", "m.location_lat", "m.location_lng",
	"m.scheduled_date", "m.status", "m.created_at", "m.updated_at",
	"u.name", "u.email",
).
	From("meetups m").
	Join("users u ON u.id = m.creator_id").
	PlaceholderFormat(squirrel.Dollar)

// Create persists a meetup and its participant entries in one transaction
func (r *MeetupRepository) Create(ctx context.Context, meetup *models.Meetup, participants []*models.MeetupParticipant) (int64, error) {
	var meetupID int64

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		insert := squirrel.Insert("meetups").
			Columns("creator_id", "title", "description", "location_name", "location_address",
				"location_lat", "location_lng", "scheduled_date", "status").
			Values(meetup.CreatorID, meetup.Title, meetup.Description,
				meetup.Location.Name, meetup.Location.Address,
				meetup.Location.Coordinates.Lat, meetup.Location.Coordinates.Lng,
				meetup.ScheduledDate, meetup.Status).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&meetupID); err != nil {
			return fmt.Errorf("error inserting meetup: %w", err)
		}

		for _, p := range participants {
			pInsert := squirrel.Insert("meetup_participants").
				Columns("meetup_id", "user_id", "status").
				Values(meetupID, p.UserID, p.Status).
				Suffix("ON CONFLICT (meetup_id, user_id) DO NOTHING").
				PlaceholderFormat(squirrel.Dollar)

			sql, args, err := pInsert.ToSql()
			if err != nil {
				return fmt.Errorf("error building SQL: %w", err)
			}

			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("error inserting participant: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return meetupID, nil
}

// GetByID retrieves a meetup with creator and participants expanded
func (r *MeetupRepository) GetByID(ctx context.Context, id int64) (*models.Meetup, error) {
	query := meetupSelect.Where("m.id = ?", id)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	meetup, err := scanMeetup(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMeetupNotFound
		}
		return nil, fmt.Errorf("error fetching meetup: %w", err)
	}

	if err := r.attachParticipants(ctx, []*models.Meetup{meetup}); err != nil {
		return nil, err
	}

	return meetup, nil
}

// ListForUser retrieves all meetups where the user is the creator or a participant
func (r *MeetupRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Meetup, error) {
	query := meetupSelect.
		Where(squirrel.Or{
			squirrel.Expr("m.creator_id = ?", userID),
			squirrel.Expr("EXISTS (SELECT 1 FROM meetup_participants mp WHERE mp.meetup_id = m.id AND mp.user_id = ?)", userID),
		}).
		OrderBy("m.scheduled_date ASC")

	return r.queryMeetups(ctx, query, true)
}

// ListAll retrieves every meetup with creator expanded, for moderation review
func (r *MeetupRepository) ListAll(ctx context.Context) ([]*models.Meetup, error) {
	return r.queryMeetups(ctx, meetupSelect.OrderBy("m.scheduled_date ASC"), true)
}

// Update persists a meetup's mutable fields. The creator reference never changes.
func (r *MeetupRepository) Update(ctx context.Context, meetup *models.Meetup) error {
	query := squirrel.Update("meetups").
		Set("title", meetup.Title).
		Set("description", meetup.Description).
		Set("location_name", meetup.Location.Name).
		Set("location_address", meetup.Location.Address).
		Set("location_lat", meetup.Location.Coordinates.Lat).
		Set("location_lng", meetup.Location.Coordinates.Lng).
		Set("scheduled_date", meetup.ScheduledDate).
		Set("status", meetup.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", meetup.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating meetup: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrMeetupNotFound
	}

	return nil
}

// Delete removes a meetup; participant rows cascade
func (r *MeetupRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("meetups").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting meetup: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrMeetupNotFound
	}

	return nil
}

// GetParticipant retrieves a single participant entry
func (r *MeetupRepository) GetParticipant(ctx context.Context, meetupID, userID int64) (*models.MeetupParticipant, error) {
	query := squirrel.Select("id", "meetup_id", "user_id", "status").
		From("meetup_participants").
		Where("meetup_id = ? AND user_id = ?", meetupID, userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var p models.MeetupParticipant
	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.MeetupID, &p.UserID, &p.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("error fetching participant: %w", err)
	}

	return &p, nil
}

// SetParticipantStatus overwrites a participant's status
func (r *MeetupRepository) SetParticipantStatus(ctx context.Context, meetupID, userID int64, status models.ParticipantStatus) error {
	query := squirrel.Update("meetup_participants").
		Set("status", status).
		Where("meetup_id = ? AND user_id = ?", meetupID, userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating participant status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}

	return nil
}

func (r *MeetupRepository) queryMeetups(ctx context.Context, query squirrel.SelectBuilder, withParticipants bool) ([]*models.Meetup, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var meetups []*models.Meetup
	for rows.Next() {
		meetup, err := scanMeetup(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning meetup: %w", err)
		}
		meetups = append(meetups, meetup)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meetups: %w", err)
	}

	if withParticipants {
		if err := r.attachParticipants(ctx, meetups); err != nil {
			return nil, err
		}
	}

	return meetups, nil
}

// attachParticipants loads the participant entries, identities included, for a
// batch of meetups in a single query.
func (r *MeetupRepository) attachParticipants(ctx context.Context, meetups []*models.Meetup) error {
	if len(meetups) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(meetups))
	byID := make(map[int64]*models.Meetup, len(meetups))
	for _, m := range meetups {
		ids = append(ids, m.ID)
		byID[m.ID] = m
	}

	query := squirrel.Select(
		"mp.id", "mp.meetup_id", "mp.user_id", "mp.status", "u.name", "u.email",
	).
		From("meetup_participants mp").
		Join("users u ON u.id = mp.user_id").
		Where(squirrel.Eq{"mp.meetup_id": ids}).
		OrderBy("mp.id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p := &models.MeetupParticipant{User: &models.User{}}
		if err := rows.Scan(&p.ID, &p.MeetupID, &p.UserID, &p.Status, &p.User.Name, &p.User.Email); err != nil {
			return fmt.Errorf("error scanning participant: %w", err)
		}
		p.User.ID = p.UserID
		if m, ok := byID[p.MeetupID]; ok {
			m.Participants = append(m.Participants, p)
		}
	}

	return rows.Err()
}

func scanMeetup(row pgx.Row) (*models.Meetup, error) {
	meetup := &models.Meetup{Creator: &models.User{}}
	err := row.Scan(
		&meetup.ID, &meetup.CreatorID, &meetup.Title, &meetup.Description,
		&meetup.Location.Name, &meetup.Location.Address,
		&meetup.Location.Coordinates.Lat, &meetup.Location.Coordinates.Lng,
		&meetup.ScheduledDate, &meetup.Status, &meetup.CreatedAt, &meetup.UpdatedAt,
		&meetup.Creator.Name, &meetup.Creator.Email)
	if err != nil {
		return nil, err
	}
	meetup.Creator.ID = meetup.CreatorID
	return meetup, nil
}
