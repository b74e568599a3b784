package models

import "time"

// Organization is the general-access organization document. Integration
// credentials never live here; they belong to IntegrationSettings, which is
// stored in a restricted collection readable only by admin code paths.
type Organization struct {
	ID                 string    `bson:"id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	IntegrationEnabled bool      `bson:"integrationEnabled" json:"integrationEnabled"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
}

// GroupWhitelistEntry marks a remote security group as allowed to survive the
// group cleaner. Groups discovered remotely arrive with Whitelisted=false.
type GroupWhitelistEntry struct {
	GroupID     string `bson:"groupId" json:"groupId"`
	GroupName   string `bson:"groupName" json:"groupName"`
	Whitelisted bool   `bson:"whitelisted" json:"whitelisted"`
}

// IntegrationSettings holds an organization's Command platform configuration,
// including the service-bot credential. One document per organization, keyed by
// org id, in its own restricted collection.
type IntegrationSettings struct {
	OrgID              string `bson:"orgId" json:"orgId"`
	ShortName          string `bson:"shortName" json:"shortName"`
	BotEmail           string `bson:"botEmail" json:"botEmail"`
	BotSecret          string `bson:"botSecret" json:"-"`
	SiteCleanerEnabled bool   `bson:"siteCleanerEnabled" json:"siteCleanerEnabled"`
	// SiteDesignations maps a category to the destination site a device of that
	// category should be moved into. An empty value means "do not move".
	SiteDesignations map[Category]string `bson:"siteDesignations" json:"siteDesignations"`
	// AlarmZoneID is the single configured classic-alarm zone for the
	// organization; every other remote zone is reclaimed as an orphan.
	AlarmZoneID    string                `bson:"alarmZoneId" json:"alarmZoneId"`
	GroupWhitelist []GroupWhitelistEntry `bson:"groupWhitelist" json:"groupWhitelist"`
	UpdatedAt      time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// DesignationFor returns the destination site configured for a category, or ""
// when the category is not configured to move.
func (s *IntegrationSettings) DesignationFor(c Category) string {
	if s.SiteDesignations == nil {
		return ""
	}
	return s.SiteDesignations[c]
}

// HasCredentials reports whether the settings carry a complete bot credential.
func (s *IntegrationSettings) HasCredentials() bool {
	return s.ShortName != "" && s.BotEmail != "" && s.BotSecret != ""
}
