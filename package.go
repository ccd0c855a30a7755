// web service that presents a short multiple-choice reasoning test,
// accepts a learner's answers and scores them against the answer key
// held on the server.
// the raw score is then mapped through a static norm table onto
// a normalized (iq-style) score, percentile and description.
// results are indicative only, this is not a psychometric instrument.
package iqtest
