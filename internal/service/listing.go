package service

import (
	"context"
	"errors"
	"log/slog"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/cache"
	"aubri-backend/internal/domain"
	"aubri-backend/internal/filter"
	"aubri-backend/internal/logger"
	"aubri-backend/internal/moderation"
	"aubri-backend/internal/policy"
	"aubri-backend/internal/repository"
	"aubri-backend/internal/validator"
)

type listingService struct {
	propertyRepo repository.PropertyRepository
	profileRepo  repository.ProfileRepository
	cache        cache.ListingCache
	emailSvc     EmailService
	workflow     *moderation.Workflow
	validate     *validator.Validator
	log          *slog.Logger
}

func NewListingService(propertyRepo repository.PropertyRepository, profileRepo repository.ProfileRepository, listingCache cache.ListingCache, emailSvc EmailService, workflow *moderation.Workflow, validate *validator.Validator) ListingService {
	if listingCache == nil {
		listingCache = cache.Nop()
	}
	return &listingService{
		propertyRepo: propertyRepo,
		profileRepo:  profileRepo,
		cache:        listingCache,
		emailSvc:     emailSvc,
		workflow:     workflow,
		validate:     validate,
		log:          logger.WithService("listing"),
	}
}

func (s *listingService) ListApproved(ctx context.Context) ([]domain.Property, error) {
	if props, ok := s.cache.GetApproved(ctx); ok {
		return approvedOnly(props), nil
	}
	// Taken before the query so a moderation committed meanwhile voids the
	// cache write below.
	gen, genErr := s.cache.Generation(ctx)
	props, err := s.propertyRepo.ListApproved(ctx)
	if err != nil {
		return nil, err
	}
	props = approvedOnly(props)
	if genErr == nil {
		s.cache.SetApproved(ctx, gen, props)
	}
	return props, nil
}

// approvedOnly drops rows the store query should never have returned.
func approvedOnly(props []domain.Property) []domain.Property {
	out := make([]domain.Property, 0, len(props))
	for _, p := range props {
		if p.Status == domain.PropertyStatusApproved {
			out = append(out, p)
		}
	}
	return out
}

func (s *listingService) Search(ctx context.Context, c filter.Criteria) ([]domain.Property, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	props, err := s.ListApproved(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(props, c), nil
}

func (s *listingService) GetByID(ctx context.Context, actor *domain.User, id string) (*domain.Property, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Hidden listings are indistinguishable from missing ones.
	if !p.VisibleTo(actor) {
		return nil, apperrors.NotFound("listing.get", "property %s not found", id)
	}
	return p, nil
}

func (s *listingService) ListByOwner(ctx context.Context, actor *domain.User, ownerID string) ([]domain.Property, error) {
	if err := policy.Require(actor, policy.CapListingListOwn); err != nil {
		return nil, err
	}
	if actor.ID != ownerID && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("listing.list_by_owner", "cannot list another owner's properties")
	}
	return s.propertyRepo.ListByOwner(ctx, ownerID)
}

func (s *listingService) ListAssigned(ctx context.Context, actor *domain.User) ([]domain.Property, error) {
	if err := policy.Require(actor, policy.CapListingListAssigned); err != nil {
		return nil, err
	}
	return s.propertyRepo.ListByAgent(ctx, actor.ID)
}

func (s *listingService) ListAllForAdmin(ctx context.Context, actor *domain.User) ([]domain.Property, error) {
	if err := policy.Require(actor, policy.CapListingListAll); err != nil {
		return nil, err
	}
	return s.propertyRepo.ListAll(ctx)
}

func (s *listingService) Create(ctx context.Context, actor *domain.User, draft domain.PropertyDraft) (*domain.Property, error) {
	const op = "listing.create"
	if err := policy.Require(actor, policy.CapListingCreate); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(op, draft); err != nil {
		return nil, err
	}

	ownerID := actor.ID
	if actor.IsAdmin() && draft.OwnerID != "" {
		ownerID = draft.OwnerID
	}
	if draft.AgentID != "" {
		agent, err := s.profileRepo.GetByID(ctx, draft.AgentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.Validation(op, "unknown agent", map[string]string{"agent_id": "No such agent"})
			}
			return nil, err
		}
		if agent.Role != domain.RoleAgent {
			return nil, apperrors.Validation(op, "assignee is not an agent", map[string]string{"agent_id": "Must be an agent"})
		}
	}

	period := draft.Period
	if period == "" {
		period = draft.Category.DefaultPeriod()
	}
	images := draft.Images
	if images == nil {
		images = []string{}
	}
	amenities := draft.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	p := &domain.Property{
		OwnerID:     ownerID,
		AgentID:     draft.AgentID,
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Price:       draft.Price,
		Period:      period,
		Location:    draft.Location,
		Images:      images,
		Amenities:   amenities,
		Status:      domain.PropertyStatusPending,
	}
	if err := s.propertyRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("Listing submitted for review", "propertyID", p.ID, "ownerID", p.OwnerID)
	return p, nil
}

func (s *listingService) Approve(ctx context.Context, actor *domain.User, id string) (*domain.Property, error) {
	return s.moderate(ctx, actor, id, moderation.ActionApprove)
}

func (s *listingService) Reject(ctx context.Context, actor *domain.User, id string) (*domain.Property, error) {
	return s.moderate(ctx, actor, id, moderation.ActionReject)
}

func (s *listingService) moderate(ctx context.Context, actor *domain.User, id string, action moderation.Action) (*domain.Property, error) {
	if err := s.workflow.Authorize(actor); err != nil {
		return nil, err
	}
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, changed, err := s.workflow.Transition(actor, p.Status, action)
	if err != nil {
		return nil, err
	}
	if !changed {
		return p, nil
	}

	ev := &domain.ModerationEvent{PropertyID: p.ID, ActorID: actor.ID, From: p.Status, To: next}
	if err := s.propertyRepo.UpdateStatus(ctx, ev); err != nil {
		return nil, err
	}
	p.Status = next
	s.cache.Invalidate(ctx)
	s.log.Info("Listing moderated", "propertyID", p.ID, "from", ev.From, "to", ev.To, "adminID", actor.ID)

	s.notifyOwner(ctx, p)
	return p, nil
}

// notifyOwner is best-effort; failures are logged and never undo moderation.
func (s *listingService) notifyOwner(ctx context.Context, p *domain.Property) {
	if s.emailSvc == nil {
		return
	}
	owner, err := s.profileRepo.GetByID(ctx, p.OwnerID)
	if err != nil {
		s.log.Warn("Owner lookup failed, skipping notification", "propertyID", p.ID, "ownerID", p.OwnerID, "error", err)
		return
	}
	if err := s.emailSvc.SendModerationResult(ctx, owner, p); err != nil {
		s.log.Warn("Moderation notification failed", "propertyID", p.ID, "error", err)
	}
}

func (s *listingService) History(ctx context.Context, actor *domain.User, id string) ([]domain.ModerationEvent, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, apperrors.Unauthenticated("listing.history", "sign in to continue")
	}
	if !actor.IsAdmin() && actor.ID != p.OwnerID {
		return nil, apperrors.Forbidden("listing.history", "only the owner or an admin can view moderation history")
	}
	return s.propertyRepo.ListModerationEvents(ctx, id)
}
