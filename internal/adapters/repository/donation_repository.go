package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/ports"
)

const outboxChannel = "outbox_channel"

type DonationRepository struct {
	db *sql.DB
}

var _ ports.DonationRepository = (*DonationRepository)(nil)

func NewDonationRepository(db *sql.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

// Create inserts the donation and, when an active campaign shares its
// currency, applies the increment with a store-evaluated expression so
// concurrent donations never lose an update. The outbox row and the
// pg_notify for the relay ride in the same transaction: either everything
// commits or nothing does.
func (r *DonationRepository) Create(ctx context.Context, donation domain.Donation) (*domain.Donation, *ports.CampaignUpdatedEvent, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO donations (donor_name, donor_email, amount, currency, is_anonymous, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		nullable(donation.DonorName),
		nullable(donation.DonorEmail),
		donation.Amount,
		donation.Currency,
		donation.IsAnonymous,
		nullable(donation.Notes),
	).Scan(&donation.ID, &donation.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	var (
		event         *ports.CampaignUpdatedEvent
		campaignID    int64
		currentAmount string
		targetAmount  string
		currency      string
	)
	// The subselect pins the update to one row. Should the one-active-
	// campaign-per-currency invariant ever break, only the canonical
	// campaign (the same one ActiveCampaign reports) takes the increment.
	err = tx.QueryRowContext(ctx, `
		UPDATE fundraising_campaigns
		SET current_amount = current_amount + $1::numeric, updated_at = NOW()
		WHERE id = (
			SELECT id FROM fundraising_campaigns
			WHERE is_active = true AND currency = $2
			ORDER BY id
			LIMIT 1
		)
		RETURNING id, current_amount, target_amount, currency`,
		donation.Amount,
		donation.Currency,
	).Scan(&campaignID, &currentAmount, &targetAmount, &currency)
	switch err {
	case nil:
		current, err := strconv.ParseFloat(currentAmount, 64)
		if err != nil {
			return nil, nil, err
		}
		target, err := strconv.ParseFloat(targetAmount, 64)
		if err != nil {
			return nil, nil, err
		}
		event = &ports.CampaignUpdatedEvent{
			CampaignID:    campaignID,
			CurrentAmount: current,
			TargetAmount:  target,
			Currency:      currency,
		}
		if err := insertOutboxEvent(ctx, tx, ports.EventCampaignUpdated, event); err != nil {
			return nil, nil, err
		}
	case sql.ErrNoRows:
		// No active campaign for this currency; the donation stands alone.
	default:
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return &donation, event, nil
}

func (r *DonationRepository) List(ctx context.Context) ([]domain.Donation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, donor_name, donor_email, amount, currency, is_anonymous, notes, created_at
		FROM donations
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	donations := []domain.Donation{}
	for rows.Next() {
		donation, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		donations = append(donations, *donation)
	}
	return donations, rows.Err()
}

func (r *DonationRepository) FindByID(ctx context.Context, id int64) (*domain.Donation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, donor_name, donor_email, amount, currency, is_anonymous, notes, created_at
		FROM donations
		WHERE id = $1`, id)

	donation, err := scanDonation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return donation, nil
}

func (r *DonationRepository) ListCampaigns(ctx context.Context) ([]domain.FundraisingCampaign, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, target_amount, current_amount, currency, is_active, start_date, end_date
		FROM fundraising_campaigns
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []domain.FundraisingCampaign{}
	for rows.Next() {
		var (
			campaign    domain.FundraisingCampaign
			description sql.NullString
			endDate     sql.NullTime
		)
		err := rows.Scan(
			&campaign.ID,
			&campaign.Title,
			&description,
			&campaign.TargetAmount,
			&campaign.CurrentAmount,
			&campaign.Currency,
			&campaign.IsActive,
			&campaign.StartDate,
			&endDate,
		)
		if err != nil {
			return nil, err
		}
		campaign.Description = description.String
		if endDate.Valid {
			end := endDate.Time
			campaign.EndDate = &end
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, rows.Err()
}

func insertOutboxEvent(ctx context.Context, tx *sql.Tx, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	eventID := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO outbox_events (id, event_type, payload)
		VALUES ($1, $2, $3)`,
		eventID, eventType, body,
	); err != nil {
		return err
	}
	// NOTIFY is transactional: the relay only hears about committed events.
	_, err = tx.ExecContext(ctx, "SELECT pg_notify($1, $2)", outboxChannel, eventID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDonation(row rowScanner) (*domain.Donation, error) {
	var (
		donation   domain.Donation
		donorName  sql.NullString
		donorEmail sql.NullString
		notes      sql.NullString
	)
	err := row.Scan(
		&donation.ID,
		&donorName,
		&donorEmail,
		&donation.Amount,
		&donation.Currency,
		&donation.IsAnonymous,
		&notes,
		&donation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	donation.DonorName = donorName.String
	donation.DonorEmail = donorEmail.String
	donation.Notes = notes.String
	return &donation, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
