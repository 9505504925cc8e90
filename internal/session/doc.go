// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the state of one chat session.
//
// A Session holds the message log loaded from storage, the classifier and
// the in-memory transcript. Every rendering surface (TUI, chat REPL, ask)
// drives the same Submit cycle:
//
//	sess := session.Open(ctx, store, classifier)
//	defer sess.Close()
//
//	ex := sess.Submit("hello")
//	fmt.Println(ex.Result.Response)
//
// Submit classifies the text, appends an entry to the log and saves the
// full log. Storage failures never reach the caller; they are logged and
// kept as the session's last persist error.
package session
