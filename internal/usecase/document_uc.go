package usecase

import (
	"cleverbank/internal/domain"

	"go.uber.org/zap"
)

// DocumentRenderer writes a PDF document to disk and returns its path.
type DocumentRenderer interface {
	SaveCheck(check *domain.Check) (string, error)
	SaveAccountRecord(record *domain.AccountRecord) (string, error)
	SaveStatement(st *domain.Statement) (string, error)
}

// DocumentUsecase renders documents off the request path. Rendering is
// a side effect of a mutation or statement read that already succeeded,
// so failures are logged and swallowed, never surfaced to the caller.
type DocumentUsecase struct {
	renderer DocumentRenderer
	log      *zap.Logger
}

// NewDocumentUsecase initializes a new DocumentUsecase
func NewDocumentUsecase(renderer DocumentRenderer, log *zap.Logger) *DocumentUsecase {
	return &DocumentUsecase{renderer: renderer, log: log}
}

func (uc *DocumentUsecase) SaveCheckAsync(check domain.Check) {
	if uc == nil || uc.renderer == nil {
		return
	}
	go func() {
		path, err := uc.renderer.SaveCheck(&check)
		if err != nil {
			uc.log.Error("failed to render check", zap.String("check_id", check.ID), zap.Error(err))
			return
		}
		uc.log.Info("check rendered", zap.String("path", path))
	}()
}

func (uc *DocumentUsecase) SaveAccountRecordAsync(record domain.AccountRecord) {
	if uc == nil || uc.renderer == nil {
		return
	}
	go func() {
		path, err := uc.renderer.SaveAccountRecord(&record)
		if err != nil {
			uc.log.Error("failed to render account record", zap.String("account", record.Account), zap.Error(err))
			return
		}
		uc.log.Info("account record rendered", zap.String("path", path))
	}()
}

func (uc *DocumentUsecase) SaveStatementAsync(st domain.Statement) {
	if uc == nil || uc.renderer == nil {
		return
	}
	go func() {
		path, err := uc.renderer.SaveStatement(&st)
		if err != nil {
			uc.log.Error("failed to render statement", zap.String("account", st.Account), zap.Error(err))
			return
		}
		uc.log.Info("statement rendered", zap.String("path", path))
	}()
}
