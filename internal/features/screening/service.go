package screening

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-recruit/internal/apperr"
	"go-recruit/internal/features/cadet"

	"github.com/d5/tengo/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ScreeningService interface {
	// Evaluate runs every enabled rule against the cadet. The second result
	// is false when no rules are enabled, in which case the eligibility
	// verdict carries no meaning.
	Evaluate(ctx context.Context, rec *cadet.Cadet) (eligible bool, evaluated bool, err error)

	CreateRule(ctx context.Context, rule *Rule) error
	GetRule(ctx context.Context, id string) (*Rule, error)
	ListRules(ctx context.Context) ([]Rule, error)
	UpdateRule(ctx context.Context, id string, update UpdateRuleRequest) (*Rule, error)
	DeleteRule(ctx context.Context, id string) error
}

type ScreeningServiceImpl struct {
	Repo   RuleRepository
	Logger *zap.Logger
}

func NewScreeningService(repo RuleRepository, logger *zap.Logger) ScreeningService {
	return &ScreeningServiceImpl{Repo: repo, Logger: logger}
}

type UpdateRuleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Script      *string `json:"script"`
	Enabled     *bool   `json:"enabled"`
}

func (s *ScreeningServiceImpl) Evaluate(ctx context.Context, rec *cadet.Cadet) (bool, bool, error) {
	rules, err := s.Repo.ListEnabled(ctx)
	if err != nil {
		return false, false, apperr.Storage(err)
	}
	if len(rules) == 0 {
		return false, false, nil
	}

	vars, err := cadetVars(rec)
	if err != nil {
		return false, false, err
	}

	for _, rule := range rules {
		ok, err := runRule(ctx, rule, vars)
		if err != nil {
			return false, false, fmt.Errorf("rule %q: %w", rule.Name, err)
		}
		if !ok {
			return false, true, nil
		}
	}
	return true, true, nil
}

// cadetVars exposes the cadet to scripts as a map keyed by the record's
// JSON field names.
func cadetVars(rec *cadet.Cadet) (map[string]interface{}, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var vars map[string]interface{}
	if err := json.Unmarshal(raw, &vars); err != nil {
		return nil, err
	}
	delete(vars, "id")
	delete(vars, "institute_id")
	delete(vars, "submission_id")
	return vars, nil
}

func runRule(ctx context.Context, rule Rule, vars map[string]interface{}) (bool, error) {
	script := tengo.NewScript([]byte(rule.Script))
	if err := script.Add("cadet", vars); err != nil {
		return false, err
	}

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return false, err
	}

	v := compiled.Get("eligible")
	if v == nil || v.Value() == nil {
		return false, errors.New("script did not set the eligible variable")
	}
	return v.Bool(), nil
}

func (s *ScreeningServiceImpl) CreateRule(ctx context.Context, rule *Rule) error {
	if rule.Name == "" {
		return apperr.Validation("Rule name is required")
	}
	if rule.Script == "" {
		return apperr.Validation("Rule script is required")
	}
	if err := compileCheck(rule.Script); err != nil {
		return apperr.Validation(fmt.Sprintf("Rule script does not compile: %v", err))
	}

	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	if err := s.Repo.Create(ctx, rule); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// compileCheck validates a script against an empty cadet so broken rules are
// rejected at save time instead of silently failing mid-import.
func compileCheck(src string) error {
	script := tengo.NewScript([]byte(src))
	if err := script.Add("cadet", map[string]interface{}{}); err != nil {
		return err
	}
	_, err := script.Compile()
	return err
}

func (s *ScreeningServiceImpl) GetRule(ctx context.Context, id string) (*Rule, error) {
	rule, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Screening rule not found")
		}
		return nil, apperr.Storage(err)
	}
	return rule, nil
}

func (s *ScreeningServiceImpl) ListRules(ctx context.Context) ([]Rule, error) {
	rules, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return rules, nil
}

func (s *ScreeningServiceImpl) UpdateRule(ctx context.Context, id string, req UpdateRuleRequest) (*Rule, error) {
	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Script != nil {
		if err := compileCheck(*req.Script); err != nil {
			return nil, apperr.Validation(fmt.Sprintf("Rule script does not compile: %v", err))
		}
		update["script"] = *req.Script
	}
	if req.Enabled != nil {
		update["enabled"] = *req.Enabled
	}
	if len(update) == 0 {
		return nil, apperr.Validation("No fields to update")
	}

	rule, err := s.Repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Screening rule not found")
		}
		return nil, apperr.Storage(err)
	}
	return rule, nil
}

func (s *ScreeningServiceImpl) DeleteRule(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("Screening rule not found")
		}
		return apperr.Storage(err)
	}
	return nil
}
