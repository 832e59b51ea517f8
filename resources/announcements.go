package resources

import (
	"context"
	"fmt"

	"github.com/nkiryanov/warehub/gateway"
	"github.com/nkiryanov/warehub/models"
)

type AnnouncementInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsActive bool   `json:"is_active"`
}

type AnnouncementService struct {
	client *gateway.Client
}

func NewAnnouncements(client *gateway.Client) *AnnouncementService {
	return &AnnouncementService{client: client}
}

func (s *AnnouncementService) List(ctx context.Context, params ListParams) (Page[models.Announcement], error) {
	var page Page[models.Announcement]
	err := s.client.Get(ctx, "/announcements/"+params.query(), &page)
	return page, err
}

// Recent returns the newest announcements, used by the dashboard.
func (s *AnnouncementService) Recent(ctx context.Context, limit int) ([]models.Announcement, error) {
	page, err := s.List(ctx, ListParams{Page: 1, PageSize: limit})
	return page.Results, err
}

func (s *AnnouncementService) Get(ctx context.Context, id int64) (models.Announcement, error) {
	var announcement models.Announcement
	err := s.client.Get(ctx, fmt.Sprintf("/announcements/%d/", id), &announcement)
	return announcement, err
}

func (s *AnnouncementService) Create(ctx context.Context, input AnnouncementInput) (models.Announcement, error) {
	var announcement models.Announcement
	err := s.client.Post(ctx, "/announcements/", input, &announcement)
	return announcement, err
}

func (s *AnnouncementService) Update(ctx context.Context, id int64, input AnnouncementInput) (models.Announcement, error) {
	var announcement models.Announcement
	err := s.client.Put(ctx, fmt.Sprintf("/announcements/%d/", id), input, &announcement)
	return announcement, err
}

func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/announcements/%d/", id))
}

// SetActive toggles the announcement without touching its other fields.
func (s *AnnouncementService) SetActive(ctx context.Context, id int64, active bool) (models.Announcement, error) {
	var announcement models.Announcement
	body := map[string]bool{"is_active": active}
	err := s.client.Patch(ctx, fmt.Sprintf("/announcements/%d/", id), body, &announcement)
	return announcement, err
}
