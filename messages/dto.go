// Package messages implements the message store and the range query engine:
// append-only persistence of message records, and retrieval over a trailing
// date window with page-bounded pagination, most-recent-first.
// This file defines its request/response DTOs.
package messages

// SendMessageRequest is the JSON body of POST /message/send/{receiver}.
// @Description Request body for sending a message
type SendMessageRequest struct {
	// Username of the sender
	// example: "johndoe"
	Sender string `json:"sender"`
	// The message text, at most MAX_MESSAGE_LENGTH characters
	// example: "hi"
	Message string `json:"message"`
}

// SendMessageResponse acknowledges a sent message.
// @Description Send acknowledgement with the UTC timestamp used
type SendMessageResponse struct {
	// example: "success"
	Status string `json:"status"`
	// The persisted timestamp, ISO-8601 UTC, second precision
	// example: "2022-01-13T04:33:00Z"
	DateSent string `json:"date_sent"`
}

// ThreadMessage is one record of a scoped (sender→receiver) retrieval.
// @Description Message within a sender→receiver thread
type ThreadMessage struct {
	// example: "2022-01-13T04:33:00Z"
	DateSent string `json:"date_sent"`
	// example: "hi"
	Message string `json:"message"`
}

// GlobalMessage is one record of an all-senders retrieval; it additionally
// identifies the sender and receiver of each record.
// @Description Message within the global retrieval feed
type GlobalMessage struct {
	// example: "johndoe"
	Sender string `json:"sender"`
	// example: "janedoe"
	Receiver string `json:"receiver"`
	// example: "2022-01-13T04:33:00Z"
	DateSent string `json:"date_sent"`
	// example: "hi"
	Message string `json:"message"`
}
