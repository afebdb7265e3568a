package service

import (
	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
)

type colorResolver interface {
	Color(category string) string
}

func toEventView(event models.Event, colors colorResolver) dto.EventView {
	color := ""
	if colors != nil {
		color = colors.Color(event.Category)
	}
	return dto.EventView{
		ID:               event.ID,
		Title:            event.Title,
		Category:         event.Category,
		CategoryColor:    color,
		Location:         event.Location,
		Description:      event.Description,
		Start:            event.Start,
		End:              event.End,
		Date:             event.Date(),
		Time:             event.Time(),
		OrganizerName:    event.OrganizerName,
		OrganizationName: event.OrganizationName,
		SponsorName:      event.SponsorName,
		Capacity:         event.Capacity,
		Registrations:    event.Registrations,
		SeatsLeft:        event.SeatsLeft(),
		FeeLabel:         event.FeeLabel(),
	}
}

func toEventViews(events []models.Event, colors colorResolver) []dto.EventView {
	views := make([]dto.EventView, 0, len(events))
	for _, event := range events {
		views = append(views, toEventView(event, colors))
	}
	return views
}
