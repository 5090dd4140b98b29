package repository

// Repository defines the interface for the monitored channel list.
// The list is ordered; channels are processed in that order.
type Repository interface {
	GetAllChannels() ([]string, error)
}
