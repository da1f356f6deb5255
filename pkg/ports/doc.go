/*
Package ports defines the driven ports (interfaces) for typeset sessions.

These interfaces decouple session handling from storage, allowing the same
editing code to run against memory, files or Redis.

# Key Interfaces

  - DocumentStore: persists and loads session documents by ID.
  - DistributedLocker: serialises access to a session across processes.

RunDocumentStoreContract checks a DocumentStore implementation against the
behaviour every adapter must share.
*/
package ports
