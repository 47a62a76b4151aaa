// Package service contains the application's business logic, coordinating
// domain entities, stores, and the generation provider. The generation
// service owns the transaction boundary around deck creation and flashcard
// persistence.
package service
