package outbox

const sessionRecordedSchema = `{
  "type": "object",
  "title": "SessionRecorded",
  "properties": {
    "session_id": {"type": "string"},
    "date": {"type": "string", "format": "date-time"},
    "note": {"type": "string"},
    "activities": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "activity_id": {"type": "string"},
          "name": {"type": "string"},
          "mode": {"type": "string", "enum": ["fuerza", "duracion", "distancia_tiempo"]},
          "position": {"type": "integer"}
        },
        "required": ["activity_id", "name", "mode", "position"],
        "additionalProperties": false
      }
    },
    "created_at": {"type": "string", "format": "date-time"}
  },
  "required": ["session_id", "date", "activities", "created_at"],
  "additionalProperties": false
}`

const sessionDeletedSchema = `{
  "type": "object",
  "title": "SessionDeleted",
  "properties": {
    "session_id": {"type": "string"},
    "occurred_at": {"type": "string", "format": "date-time"}
  },
  "required": ["session_id", "occurred_at"],
  "additionalProperties": false
}`

const activityDetailRecordedSchema = `{
  "type": "object",
  "title": "ActivityDetailRecorded",
  "properties": {
    "activity_id": {"type": "string"},
    "mode": {"type": "string", "enum": ["fuerza", "duracion", "distancia_tiempo"]},
    "series": {"type": "integer"},
    "repetitions": {"type": "integer"},
    "weight_kg": {"type": "number"},
    "seconds": {"type": "integer"},
    "distance_km": {"type": "number"},
    "time_seconds": {"type": "integer"},
    "pace_seconds_per_km": {"type": "number"},
    "occurred_at": {"type": "string", "format": "date-time"}
  },
  "required": ["activity_id", "mode", "occurred_at"],
  "additionalProperties": false
}`
