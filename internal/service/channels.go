package service

import (
	"context"
	"log/slog"

	"github.com/esterlin12/tvplus/internal/apperr"
	"github.com/esterlin12/tvplus/internal/models"
	"github.com/esterlin12/tvplus/internal/streamurl"
	"github.com/google/uuid"
)

var (
	ErrNotEnoughPermissions = apperr.Forbidden("not enough permissions")
	ErrNoPlaylists          = apperr.NotFound("no M3U8 URLs found for this channel")
)

type ChannelStore interface {
	Create(ctx context.Context, c *models.Channel) error
	GetActive(ctx context.Context, id string) (*models.Channel, error)
	ListActive(ctx context.Context, filter models.ChannelFilter) ([]models.Channel, error)
	Replace(ctx context.Context, id string, f models.ChannelFields, now models.Timestamp) (*models.Channel, error)
	Deactivate(ctx context.Context, id string, now models.Timestamp) error
	Categories(ctx context.Context) ([]string, error)
}

type ChannelService struct {
	channels ChannelStore
	audit    AuditLogger
	logger   *slog.Logger
}

// NewChannelService wires the channel operations. audit may be nil.
func NewChannelService(channels ChannelStore, audit AuditLogger, logger *slog.Logger) *ChannelService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChannelService{channels: channels, audit: audit, logger: logger}
}

// Create stores a new active channel owned by owner. Any invalid url rejects the whole channel.
func (s *ChannelService) Create(ctx context.Context, owner *models.User, f models.ChannelFields) (*models.Channel, error) {
	if err := validateURLs(f.URLs); err != nil {
		return nil, err
	}

	now := models.Now()
	c := &models.Channel{
		ID:          uuid.NewString(),
		Name:        f.Name,
		Description: f.Description,
		Logo:        f.Logo,
		URLs:        nonNil(f.URLs),
		Category:    f.Category,
		IsActive:    true,
		CreatedBy:   owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.channels.Create(ctx, c); err != nil {
		return nil, err
	}
	s.record(ctx, owner, "create", c.ID, c.Name)
	return c, nil
}

// Get returns an active channel. Inactive channels are reported as not found.
func (s *ChannelService) Get(ctx context.Context, id string) (*models.Channel, error) {
	return s.channels.GetActive(ctx, id)
}

// List returns active channels, newest first, narrowed by category and search.
func (s *ChannelService) List(ctx context.Context, category, search string) ([]models.Channel, error) {
	return s.channels.ListActive(ctx, models.ChannelFilter{Category: category, Search: search})
}

// ListOwned returns the active channels created by owner, newest first.
func (s *ChannelService) ListOwned(ctx context.Context, owner *models.User) ([]models.Channel, error) {
	return s.channels.ListActive(ctx, models.ChannelFilter{Owner: owner.ID})
}

// Update fully replaces the mutable fields of a channel the caller owns (or any channel for a super-user).
func (s *ChannelService) Update(ctx context.Context, caller *models.User, id string, f models.ChannelFields) (*models.Channel, error) {
	if _, err := s.authorize(ctx, caller, id); err != nil {
		return nil, err
	}
	if err := validateURLs(f.URLs); err != nil {
		return nil, err
	}

	f.URLs = nonNil(f.URLs)
	c, err := s.channels.Replace(ctx, id, f, models.Now())
	if err != nil {
		return nil, err
	}
	s.record(ctx, caller, "update", c.ID, c.Name)
	return c, nil
}

// SoftDelete marks a channel inactive. Deleting an inactive channel reports not found.
func (s *ChannelService) SoftDelete(ctx context.Context, caller *models.User, id string) error {
	c, err := s.authorize(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.channels.Deactivate(ctx, id, models.Now()); err != nil {
		return err
	}
	s.record(ctx, caller, "delete", id, c.Name)
	return nil
}

// Categories lists the distinct categories of active channels.
func (s *ChannelService) Categories(ctx context.Context) ([]string, error) {
	return s.channels.Categories(ctx)
}

// PlayableURLs returns the channel's .m3u8 urls, or ErrNoPlaylists when it has none.
func (s *ChannelService) PlayableURLs(ctx context.Context, id string) ([]string, error) {
	c, err := s.channels.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}
	urls := streamurl.Playlists(c.URLs)
	if len(urls) == 0 {
		return nil, ErrNoPlaylists
	}
	return urls, nil
}

// authorize loads an active channel and checks that caller may modify it.
func (s *ChannelService) authorize(ctx context.Context, caller *models.User, id string) (*models.Channel, error) {
	c, err := s.channels.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.CreatedBy != caller.ID && !caller.IsSuperUser {
		return nil, ErrNotEnoughPermissions
	}
	return c, nil
}

func (s *ChannelService) record(ctx context.Context, actor *models.User, action, channelID, details string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Log(ctx, actor.ID, action, models.ResourceChannel, channelID, details); err != nil {
		s.logger.Warn("audit log failed", "action", action, "channel_id", channelID, "error", err)
	}
}

func validateURLs(urls []string) error {
	if bad, ok := streamurl.FirstInvalid(urls); ok {
		return apperr.ValidationFields("invalid URL: "+bad, map[string]string{"urls": "invalid URL: " + bad})
	}
	return nil
}

func nonNil(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}
