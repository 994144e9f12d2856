package queue

const TypeAuditRecord = "audit:record"

// QueueAudit is served at a lower priority than request-path work.
const QueueAudit = "low"
