// Package contrast computes WCAG 2.1 contrast ratios between text and its
// effective background and classifies them against the AA and AAA thresholds.
//
// The pure functions (Luminance, Ratio, Classify) take parsed Color values.
// ResolveEffectiveBackground and EvaluateElement read style state through the
// StyledNode and TextNode interfaces, so any tree that can report a background
// and a parent can be audited. Audit folds EvaluateElement over a batch and
// returns a fresh Report per call.
package contrast
