package handlers

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	Equipment    *EquipmentHandler
	Organization *OrganizationHandler
	Sync         *SyncHandler
}
