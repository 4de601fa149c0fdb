// Package remotesync fetches the remote hotfix document and distributes its sub-documents to the
// hotfix cache, the update gate, and the maintenance poller.
package remotesync
