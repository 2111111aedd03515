// ABOUTME: SQLite schema for quiz analytics persistence
// ABOUTME: Session history plus running per-topic performance counters
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Completed quiz sessions
CREATE TABLE IF NOT EXISTS quiz_sessions (
    id TEXT PRIMARY KEY,
    topic TEXT NOT NULL,
    quiz_type TEXT NOT NULL,
    quiz_format TEXT NOT NULL,
    difficulty TEXT NOT NULL,
    score INTEGER NOT NULL,
    answered INTEGER NOT NULL,
    total_questions INTEGER NOT NULL,
    percentage REAL NOT NULL,
    duration_ms INTEGER NOT NULL,
    ended_early INTEGER NOT NULL DEFAULT 0,
    completed_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Running correct/incorrect counters per topic
CREATE TABLE IF NOT EXISTS topic_performance (
    topic TEXT PRIMARY KEY,
    correct INTEGER NOT NULL DEFAULT 0,
    incorrect INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_quiz_sessions_topic ON quiz_sessions(topic);
CREATE INDEX IF NOT EXISTS idx_quiz_sessions_completed ON quiz_sessions(completed_at);
`
