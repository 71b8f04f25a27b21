package models

import (
	"fmt"
	"strings"
)

// Channel is an outreach channel a message can be sent through
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelLinkedIn Channel = "linkedin"
	ChannelPhone    Channel = "phone"
)

// ParseChannel converts free text into a known channel
func ParseChannel(s string) (Channel, error) {
	switch Channel(strings.ToLower(strings.TrimSpace(s))) {
	case ChannelEmail:
		return ChannelEmail, nil
	case ChannelLinkedIn:
		return ChannelLinkedIn, nil
	case ChannelPhone:
		return ChannelPhone, nil
	}
	return "", fmt.Errorf("unknown outreach channel %q", s)
}

// OutreachStats holds message counters and the leads already contacted per channel
type OutreachStats struct {
	TotalLeads          int      `json:"totalLeads"`
	QualifiedLeads      int      `json:"qualifiedLeads"`
	ConversionRate      float64  `json:"conversionRate"`
	AIConfidence        int      `json:"aiConfidence"`
	EmailsSent          int      `json:"emailsSent"`
	LinkedInConnections int      `json:"linkedinConnections"`
	CallsMade           int      `json:"callsMade"`
	EmailLeads          []string `json:"emailLeads"`
	LinkedInLeads       []string `json:"linkedinLeads"`
	PhoneLeads          []string `json:"phoneLeads"`
}

// NewOutreachStats returns zeroed counters with non-nil lead lists
func NewOutreachStats() OutreachStats {
	return OutreachStats{
		EmailLeads:    []string{},
		LinkedInLeads: []string{},
		PhoneLeads:    []string{},
	}
}

// Normalize fills lead lists that older snapshots did not carry
func (s *OutreachStats) Normalize() {
	if s.EmailLeads == nil {
		s.EmailLeads = []string{}
	}
	if s.LinkedInLeads == nil {
		s.LinkedInLeads = []string{}
	}
	if s.PhoneLeads == nil {
		s.PhoneLeads = []string{}
	}
}

// TotalOutreach is the number of messages sent across every channel
func (s OutreachStats) TotalOutreach() int {
	return s.EmailsSent + s.LinkedInConnections + s.CallsMade
}

// Track counts one sent message and remembers the lead, if any, at most once
func (s *OutreachStats) Track(channel Channel, leadID string) error {
	s.Normalize()
	switch channel {
	case ChannelEmail:
		s.EmailsSent++
		s.EmailLeads = appendOnce(s.EmailLeads, leadID)
	case ChannelLinkedIn:
		s.LinkedInConnections++
		s.LinkedInLeads = appendOnce(s.LinkedInLeads, leadID)
	case ChannelPhone:
		s.CallsMade++
		s.PhoneLeads = appendOnce(s.PhoneLeads, leadID)
	default:
		return fmt.Errorf("unknown outreach channel %q", channel)
	}
	return nil
}

// HasContacted reports whether the lead already received a message on the channel
func (s OutreachStats) HasContacted(channel Channel, leadID string) bool {
	var ids []string
	switch channel {
	case ChannelEmail:
		ids = s.EmailLeads
	case ChannelLinkedIn:
		ids = s.LinkedInLeads
	case ChannelPhone:
		ids = s.PhoneLeads
	}
	for _, id := range ids {
		if id == leadID {
			return true
		}
	}
	return false
}

// ContactedChannels lists the channels a lead has been reached on
func (s OutreachStats) ContactedChannels(leadID string) []Channel {
	channels := []Channel{}
	for _, ch := range []Channel{ChannelEmail, ChannelLinkedIn, ChannelPhone} {
		if s.HasContacted(ch, leadID) {
			channels = append(channels, ch)
		}
	}
	return channels
}

func appendOnce(ids []string, id string) []string {
	if id == "" {
		return ids
	}
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
