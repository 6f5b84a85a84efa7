/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

import "errors"

var (
	ErrAlreadyJoined  = errors.New("connection has already joined")
	ErrUnknownPlayer  = errors.New("connection has not joined")
	ErrNotAdmin       = errors.New("only the admin can start a round")
	ErrNoPlayers      = errors.New("no players present")
	ErrNotDrawer      = errors.New("only the drawer can choose a word")
	ErrNotChoosing    = errors.New("no word is being chosen")
	ErrEmptyWord      = errors.New("word is empty")
	ErrWordNotOffered = errors.New("word was not offered")
	ErrUnknownEvent   = errors.New("unknown event type")
	ErrRoomClosed     = errors.New("room is closed")
	ErrTooFewWords    = errors.New("word pool needs at least 3 distinct words")
)
