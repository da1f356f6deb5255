/*
Package session implements editing sessions over persisted expression documents.

A Manager serialises access per session ID, in process with reference counted
mutexes and across replicas with an optional ports.DistributedLocker.
*/
package session
