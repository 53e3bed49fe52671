package database

import (
	"context"
	"database/sql"
)

// Schema creates every table the repositories use.  Statements are
// idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS venue_layouts (
    event_id   VARCHAR(64)  NOT NULL PRIMARY KEY,
    name       VARCHAR(255) NOT NULL DEFAULT '',
    document   JSON         NOT NULL,
    updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS seat_overrides (
    id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
    event_id   VARCHAR(64)  NOT NULL,
    section_id VARCHAR(64)  NULL,
    seat_id    VARCHAR(64)  NOT NULL,
    status     ENUM('SOLD','RESERVED','BLOCKED') NOT NULL,
    reason     VARCHAR(255) NULL,
    booking_id VARCHAR(64)  NULL,
    UNIQUE KEY uq_override (event_id, seat_id, status),
    KEY idx_override_section (event_id, section_id)
);

CREATE TABLE IF NOT EXISTS cart_commits (
    id          CHAR(36)      NOT NULL PRIMARY KEY,
    event_id    VARCHAR(64)   NOT NULL,
    customer_id VARCHAR(64)   NOT NULL,
    total       DECIMAL(12,2) NOT NULL,
    created_at  TIMESTAMP(3)  NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
    KEY idx_commit_customer (event_id, customer_id)
);

CREATE TABLE IF NOT EXISTS cart_seats (
    id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
    commit_id    CHAR(36)      NOT NULL,
    event_id     VARCHAR(64)   NOT NULL,
    seat_id      VARCHAR(64)   NOT NULL,
    section_id   VARCHAR(64)   NOT NULL,
    section_name VARCHAR(255)  NOT NULL,
    row_label    VARCHAR(16)   NOT NULL,
    seat_number  INT           NOT NULL,
    tier_id      VARCHAR(64)   NOT NULL,
    price        DECIMAL(12,2) NOT NULL,
    UNIQUE KEY uq_cart_seat (event_id, seat_id),
    CONSTRAINT fk_cart_seat_commit FOREIGN KEY (commit_id) REFERENCES cart_commits (id) ON DELETE CASCADE
);
`

// Migrate applies Schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}
