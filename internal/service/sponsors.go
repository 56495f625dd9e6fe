package service

import (
	"github.com/gin-gonic/gin"

	"MonkeyStarApi/internal/middleware"
	"MonkeyStarApi/internal/models"
	"MonkeyStarApi/pkg/logger"
)

type sponsorEntry struct {
	ID              int64  `json:"id"`
	ChannelUsername string `json:"channel_username"`
	ChannelURL      string `json:"channel_url"`
	Subscribed      bool   `json:"subscribed"`
}

// GetSponsors lists every sponsor channel merged with the caller's recorded
// subscription status, so the front-end renders one checklist.
func (s *Service) GetSponsors(c *gin.Context) {
	accountID, err := middleware.GetAccountIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	sponsors, err := s.store.ListSponsors(c.Request.Context())
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	subs, err := s.store.GetSubscriptionStatus(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}
	subscribed := make(map[int64]bool, len(subs))
	for _, sub := range subs {
		subscribed[sub.SponsorID] = sub.IsSubscribed
	}

	entries := make([]sponsorEntry, 0, len(sponsors))
	for _, sp := range sponsors {
		entries = append(entries, sponsorEntry{
			ID:              sp.ID,
			ChannelUsername: sp.ChannelUsername,
			ChannelURL:      sp.ChannelURL,
			Subscribed:      subscribed[sp.ID],
		})
	}

	c.JSON(200, gin.H{"sponsors": entries})
}

type subscribeInput struct {
	SponsorID  int64 `json:"sponsor_id" validate:"required"`
	Subscribed bool  `json:"subscribed"`
}

// SetSubscription records a subscription check result for the caller. The
// bot verifies the actual channel membership before calling this.
func (s *Service) SetSubscription(c *gin.Context) {
	var input subscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "unable to unmarshal body"})
		return
	}
	if err := validate.Struct(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	accountID, err := middleware.GetAccountIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	err = s.store.SetSubscriptionStatus(c.Request.Context(), accountID, input.SponsorID, input.Subscribed)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, gin.H{"sponsor_id": input.SponsorID, "subscribed": input.Subscribed})
}

type addSponsorInput struct {
	ChannelUsername string `json:"channel_username" validate:"required"`
	ChannelID       string `json:"channel_id"`
	ChannelURL      string `json:"channel_url" validate:"required,url"`
}

// AddSponsor is an admin operation.
func (s *Service) AddSponsor(c *gin.Context) {
	var input addSponsorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "unable to unmarshal body"})
		return
	}
	if err := validate.Struct(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	sponsor := &models.Sponsor{
		ChannelUsername: input.ChannelUsername,
		ChannelID:       input.ChannelID,
		ChannelURL:      input.ChannelURL,
	}
	if err := s.store.CreateSponsor(c.Request.Context(), sponsor); err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(201, gin.H{"id": sponsor.ID})
}
