package repository

// Publisher stores a rendered feed document
type Publisher interface {
	Publish(doc []byte) error
}
