package cache

import (
	"fmt"
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
)

// ScheduleKeys builds the cache keys of resolved schedules and plan lists.
//
//	<prefix>schedule:est:<establishment>:member:<membership>:date:<YYYY-MM-DD>
//	<prefix>rpm:list:est:<establishment>:<variant>
type ScheduleKeys struct {
	prefix string
}

// NewScheduleKeys creates key builders under prefix, which may be empty.
func NewScheduleKeys(prefix string) ScheduleKeys {
	return ScheduleKeys{prefix: prefix}
}

// Daily is the key of one member's resolved day.
func (k ScheduleKeys) Daily(establishmentID, membershipID uint, day time.Time) string {
	return fmt.Sprintf("%sschedule:est:%d:member:%d:date:%s", k.prefix, establishmentID, membershipID, biztime.FormatDate(day))
}

// MemberPattern matches every cached day of a member.
func (k ScheduleKeys) MemberPattern(establishmentID, membershipID uint) string {
	return fmt.Sprintf("%sschedule:est:%d:member:%d:date:*", k.prefix, establishmentID, membershipID)
}

// RpmList is the key of one cached page of an establishment's plan list.
func (k ScheduleKeys) RpmList(establishmentID uint, variant string) string {
	return fmt.Sprintf("%srpm:list:est:%d:%s", k.prefix, establishmentID, variant)
}

// RpmListPattern matches every cached plan list page of an establishment.
func (k ScheduleKeys) RpmListPattern(establishmentID uint) string {
	return fmt.Sprintf("%srpm:list:est:%d:*", k.prefix, establishmentID)
}
