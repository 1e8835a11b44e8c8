package repository

import "fmt"

// Partition keys mirror the storage layout of the web client this service
// replaces, scoped per user.
func creditsKey(userID string) string     { return fmt.Sprintf("socialflow:credits:%s", userID) }
func postsKey(userID string) string       { return fmt.Sprintf("socialflow:posts:%s", userID) }
func ideasKey(userID string) string       { return fmt.Sprintf("socialflow:saved_ideas:%s", userID) }
func connectionsKey(userID string) string { return fmt.Sprintf("socialflow:connections:%s", userID) }

const usersKey = "socialflow:users_database"
