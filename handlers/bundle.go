package handlers

// HandlerBundle groups all HTTP handlers for route registration.
type HandlerBundle struct {
	UserHandler         *UserHandler
	ServiceHandler      *ServiceHandler
	DiscoveryHandler    *DiscoveryHandler
	RatingHandler       *RatingHandler
	MessageHandler      *MessageHandler
	NotificationHandler *NotificationHandler
	StorageHandler      *StorageHandler
}
