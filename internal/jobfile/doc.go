// Package jobfile loads and models cron job documents.
//
// The input is the JSON produced by the agent's `cron list` tooling:
//
//	{
//	  "jobs": [
//	    {
//	      "id": "...",
//	      "name": "...",
//	      "enabled": true,
//	      "schedule": {"kind": "every", "everyMs": 900000, "anchorMs": 0}
//	                | {"kind": "cron", "expr": "0 8 * * *", "tz": "Asia/Tokyo"}
//	                | {"kind": "at", "atMs": 123},
//	      "payload": {"kind": "agentTurn", "message": "...", "timeoutSeconds": 600}
//	    }
//	  ]
//	}
//
// YAML documents are accepted too; they are normalized and coerced to JSON
// bytes so a single decoder handles both formats. Unknown object keys are
// tolerated: job payloads are extensible and authored by other tooling.
//
// All records are immutable value types. Loading never mutates or persists
// them; validation of schedule/cron shape happens downstream in the engine
// and linter.
package jobfile
