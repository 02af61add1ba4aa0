package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/scholaris/core"
)

// Key prefixes for different data types
const (
	researcherRecordPrefix = "resrec"
	researcherDeptPrefix   = "resdept"
	researcherIDSeq        = "resrecseq"

	publicationRecordPrefix = "pubrec"
	publicationGoalPrefix   = "pubgoal"
	publicationDOIPrefix    = "pubdoi"
	publicationIDSeq        = "pubrecseq"

	thesisRecordPrefix     = "thsrec"
	thesisSupervisorPrefix = "thssup"
	thesisIDSeq            = "thsrecseq"
)

// makeResearcherKey generates a key for a researcher record by ID.
func makeResearcherKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", researcherRecordPrefix, id))
}

// makeDepartmentKey generates a composite key for the department index.
// Format: prefix:department:id
func makeDepartmentKey(department string, id core.ID) []byte {
	prefix := fmt.Sprintf("%s:%s:", researcherDeptPrefix, department)
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	// Use big-endian so iteration order matches numeric ID order
	binary.BigEndian.PutUint64(key[len(prefix):], uint64(id))
	return key
}

// makePartialDepartmentKey generates a prefix for scanning all
// researchers in a department.
func makePartialDepartmentKey(department string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", researcherDeptPrefix, department))
}

// makePublicationKey generates a key for a publication record by ID.
func makePublicationKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", publicationRecordPrefix, id))
}

// makeGoalKey generates a composite key for the goal index.
// Format: prefix:code:id
func makeGoalKey(code string, id core.ID) []byte {
	prefix := fmt.Sprintf("%s:%s:", publicationGoalPrefix, code)
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], uint64(id))
	return key
}

// makePartialGoalKey generates a prefix for scanning all publications
// tagged with a goal.
func makePartialGoalKey(code string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", publicationGoalPrefix, code))
}

// makeDOIKey generates the unique index key for a publication DOI.
func makeDOIKey(doi string) []byte {
	return []byte(fmt.Sprintf("%s:%s", publicationDOIPrefix, doi))
}

// makeThesisKey generates a key for a thesis record by ID.
func makeThesisKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", thesisRecordPrefix, id))
}

// makeSupervisorKey generates a composite key for the supervisor index.
// Both IDs are big-endian encoded at fixed width, so one supervisor's
// prefix can never match another supervisor's entries.
func makeSupervisorKey(supervisorId, thesisId core.ID) []byte {
	prefix := thesisSupervisorPrefix + ":"
	key := make([]byte, len(prefix)+16)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], uint64(supervisorId))
	binary.BigEndian.PutUint64(key[len(prefix)+8:], uint64(thesisId))
	return key
}

// makePartialSupervisorKey generates a prefix for scanning all theses
// supervised by one researcher.
func makePartialSupervisorKey(supervisorId core.ID) []byte {
	prefix := thesisSupervisorPrefix + ":"
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], uint64(supervisorId))
	return key
}

// hasPrefix checks if a byte slice has a given prefix
func hasPrefix(s, prefix []byte) bool {
	return len(s) >= len(prefix) && string(s[:len(prefix)]) == string(prefix)
}
