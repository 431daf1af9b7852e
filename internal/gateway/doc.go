// Package gateway defines the Remote Service Gateway: the seven card operations
// the effect layer performs against the board service, and the error type every
// implementation returns. Implementations live in the rest and trello
// subpackages.
package gateway
