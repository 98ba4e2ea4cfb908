package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mikayuko/projectbingsu/internal/platform/apierr"
	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/repos"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

const (
	codeLength  = 5
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// maxCodeGenAttempts bounds collision retries against the unique index.
	maxCodeGenAttempts = 5
)

// CodeValidation is the public view of a code's redeemability.
type CodeValidation struct {
	Code      string        `json:"code"`
	CupSize   types.CupSize `json:"cup_size"`
	ExpiresAt time.Time     `json:"expires_at"`
	Valid     bool          `json:"valid"`
}

type MenuCodeService interface {
	Generate(ctx context.Context, cupSize types.CupSize, createdBy uuid.UUID) (*types.MenuCode, error)
	Validate(ctx context.Context, code string) (*CodeValidation, error)
	List(ctx context.Context, filter repos.MenuCodeFilter) ([]*types.MenuCode, error)
	StartSweeper(ctx context.Context)
}

type menuCodeService struct {
	db            *gorm.DB
	log           *logger.Logger
	menuCodeRepo  repos.MenuCodeRepo
	codeTTL       time.Duration
	sweepInterval time.Duration
}

func NewMenuCodeService(
	db *gorm.DB,
	log *logger.Logger,
	menuCodeRepo repos.MenuCodeRepo,
	codeTTL time.Duration,
	sweepInterval time.Duration,
) MenuCodeService {
	serviceLog := log.With("service", "MenuCodeService")
	return &menuCodeService{
		db:            db,
		log:           serviceLog,
		menuCodeRepo:  menuCodeRepo,
		codeTTL:       codeTTL,
		sweepInterval: sweepInterval,
	}
}

func (mcs *menuCodeService) Generate(ctx context.Context, cupSize types.CupSize, createdBy uuid.UUID) (*types.MenuCode, error) {
	if !cupSize.Valid() {
		return nil, apierr.BadRequest("invalid_cup_size", fmt.Errorf("cup size must be S, M or L"))
	}

	var created *types.MenuCode
	for attempt := 1; attempt <= maxCodeGenAttempts; attempt++ {
		code, err := randomCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate code: %w", err)
		}
		exists, err := mcs.menuCodeRepo.CodeExists(ctx, nil, code)
		if err != nil {
			return nil, fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if exists {
			mcs.log.Debug("menu code collision, retrying", "attempt", attempt)
			continue
		}

		row := &types.MenuCode{
			ID:          uuid.New(),
			Code:        code,
			CupSize:     cupSize,
			ExpiresAt:   time.Now().Add(mcs.codeTTL),
			CreatedByID: createdBy,
		}
		rows, err := mcs.menuCodeRepo.Create(ctx, nil, []*types.MenuCode{row})
		if err != nil {
			// The unique index can still trip if two admins generate the
			// same code between the existence check and the insert.
			mcs.log.Warn("menu code insert failed, retrying", "attempt", attempt, "error", err)
			continue
		}
		created = rows[0]
		break
	}
	if created == nil {
		return nil, fmt.Errorf("could not generate a unique menu code after %d attempts", maxCodeGenAttempts)
	}

	mcs.log.Info("Generated menu code", "menu_code", created.Code, "cup_size", string(created.CupSize))
	return created, nil
}

func (mcs *menuCodeService) Validate(ctx context.Context, code string) (*CodeValidation, error) {
	normalized := NormalizeCode(code)
	if len(normalized) != codeLength {
		return nil, apierr.BadRequest("invalid_code_format", fmt.Errorf("code must be %d characters", codeLength))
	}

	rows, err := mcs.menuCodeRepo.GetByCodes(ctx, nil, []string{normalized})
	if err != nil {
		return nil, fmt.Errorf("failed to look up code: %w", err)
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("code_not_found", fmt.Errorf("unknown menu code"))
	}
	row := rows[0]
	if row.Used {
		return nil, apierr.Conflict("code_used", fmt.Errorf("menu code already redeemed"))
	}
	if row.Expired(time.Now()) {
		return nil, apierr.New(410, "code_expired", fmt.Errorf("menu code expired"))
	}

	return &CodeValidation{
		Code:      row.Code,
		CupSize:   row.CupSize,
		ExpiresAt: row.ExpiresAt,
		Valid:     true,
	}, nil
}

func (mcs *menuCodeService) List(ctx context.Context, filter repos.MenuCodeFilter) ([]*types.MenuCode, error) {
	return mcs.menuCodeRepo.List(ctx, nil, filter)
}

// StartSweeper deletes unused codes that have been expired for longer than
// one TTL. Recently expired codes are kept so Validate can answer
// code_expired instead of code_not_found.
func (mcs *menuCodeService) StartSweeper(ctx context.Context) {
	interval := mcs.sweepInterval
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-mcs.codeTTL)
				removed, err := mcs.menuCodeRepo.DeleteExpiredBefore(ctx, nil, cutoff)
				if err != nil {
					mcs.log.Warn("code sweep failed", "error", err)
					continue
				}
				if removed > 0 {
					mcs.log.Info("Swept expired menu codes", "removed", removed)
				}
			}
		}
	}()
}

// NormalizeCode uppercases and trims user-entered codes.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, codeLength)
	for i, b := range buf {
		out[i] = codeCharset[int(b)%len(codeCharset)]
	}
	return string(out), nil
}
