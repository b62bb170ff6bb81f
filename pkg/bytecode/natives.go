package bytecode

// Native function ids used by the code generator.
const (
	NativeSetCameraPosition  = 1
	NativeSetCameraFocus     = 2
	NativeGetCameraPosition  = 5
	NativeGetCameraFocus     = 6
	NativeRunText            = 13
	NativeTempText           = 14
	NativeGetProperty        = 18
	NativeSetProperty        = 19
	NativeGetPosition        = 20
	NativeGetDistance        = 22
	NativeCreate             = 24
	NativeRandom             = 25
	NativeStartCameraControl = 27
	NativeEndCameraControl   = 28
	NativeSetWidescreen      = 29
	NativeObjectDelete       = 45
	NativeStartDialogue      = 114
	NativeEndDialogue        = 115
	NativeStartGameSpeed     = 122
	NativeEndGameSpeed       = 123
	NativeGetObjectState     = 137
	NativeKeyDown            = 411
)

var nativeNames = [...]string{
	"NONE",                                             // 0
	"SET_CAMERA_POSITION",                              // 1
	"SET_CAMERA_FOCUS",                                 // 2
	"MOVE_CAMERA_POSITION",                             // 3
	"MOVE_CAMERA_FOCUS",                                // 4
	"GET_CAMERA_POSITION",                              // 5
	"GET_CAMERA_FOCUS",                                 // 6
	"SPIRIT_EJECT",                                     // 7
	"SPIRIT_HOME",                                      // 8
	"SPIRIT_POINT_POS",                                 // 9
	"SPIRIT_POINT_GAME_THING",                          // 10
	"GAME_THING_FIELD_OF_VIEW",                         // 11
	"POS_FIELD_OF_VIEW",                                // 12
	"RUN_TEXT",                                         // 13
	"TEMP_TEXT",                                        // 14
	"TEXT_READ",                                        // 15
	"GAME_THING_CLICKED",                               // 16
	"SET_SCRIPT_STATE",                                 // 17
	"GET_PROPERTY",                                     // 18
	"SET_PROPERTY",                                     // 19
	"GET_POSITION",                                     // 20
	"SET_POSITION",                                     // 21
	"GET_DISTANCE",                                     // 22
	"CALL",                                             // 23
	"CREATE",                                           // 24
	"RANDOM",                                           // 25
	"DLL_GETTIME",                                      // 26
	"START_CAMERA_CONTROL",                             // 27
	"END_CAMERA_CONTROL",                               // 28
	"SET_WIDESCREEN",                                   // 29
	"MOVE_GAME_THING",                                  // 30
	"SET_FOCUS",                                        // 31
	"HAS_CAMERA_ARRIVED",                               // 32
	"FLOCK_CREATE",                                     // 33
	"FLOCK_ATTACH",                                     // 34
	"FLOCK_DETACH",                                     // 35
	"FLOCK_DISBAND",                                    // 36
	"ID_SIZE",                                          // 37
	"FLOCK_MEMBER",                                     // 38
	"GET_HAND_POSITION",                                // 39
	"PLAY_SOUND_EFFECT",                                // 40
	"START_MUSIC",                                      // 41
	"STOP_MUSIC",                                       // 42
	"ATTACH_MUSIC",                                     // 43
	"DETACH_MUSIC",                                     // 44
	"OBJECT_DELETE",                                    // 45
	"FOCUS_FOLLOW",                                     // 46
	"POSITION_FOLLOW",                                  // 47
	"CALL_NEAR",                                        // 48
	"SPECIAL_EFFECT_POSITION",                          // 49
	"SPECIAL_EFFECT_OBJECT",                            // 50
	"DANCE_CREATE",                                     // 51
	"CALL_IN",                                          // 52
	"CHANGE_INNER_OUTER_PROPERTIES",                    // 53
	"SNAPSHOT",                                         // 54
	"GET_ALIGNMENT",                                    // 55
	"SET_ALIGNMENT",                                    // 56
	"INFLUENCE_OBJECT",                                 // 57
	"INFLUENCE_POSITION",                               // 58
	"GET_INFLUENCE",                                    // 59
	"SET_INTERFACE_INTERACTION",                        // 60
	"PLAYED",                                           // 61
	"RANDOM_ULONG",                                     // 62
	"SET_GAMESPEED",                                    // 63
	"CALL_IN_NEAR",                                     // 64
	"OVERRIDE_STATE_ANIMATION",                         // 65
	"CREATURE_CREATE_RELATIVE_TO_CREATURE",             // 66
	"CREATURE_LEARN_EVERYTHING",                        // 67
	"CREATURE_SET_KNOWS_ACTION",                        // 68
	"CREATURE_SET_AGENDA_PRIORITY",                     // 69
	"CREATURE_TURN_OFF_ALL_DESIRES",                    // 70
	"CREATURE_LEARN_DISTINCTION_ABOUT_ACTIVITY_OBJECT", // 71
	"CREATURE_DO_ACTION",                               // 72
	"IN_CREATURE_HAND",                                 // 73
	"CREATURE_SET_DESIRE_VALUE",                        // 74
	"CREATURE_SET_DESIRE_ACTIVATED3",                   // 75
	"CREATURE_SET_DESIRE_ACTIVATED",                    // 76
	"CREATURE_SET_DESIRE_MAXIMUM",                      // 77
	"CONVERT_CAMERA_POSITION",                          // 78
	"CONVERT_CAMERA_FOCUS",                             // 79
	"CREATURE_SET_PLAYER",                              // 80
	"CREATURE_INITIALISE_NUM_TIMES_PERFORMED_ACTION",   // 81
	"CREATURE_GET_NUM_TIMES_ACTION_PERFORMED",          // 82
	"GET_OBJECT_DROPPED",                               // 83
	"CLEAR_DROPPED_BY_OBJECT",                          // 84
	"CREATE_REACTION",                                  // 85
	"REMOVE_REACTION",                                  // 86
	"GET_COUNTDOWN_TIMER",                              // 87
	"START_DUAL_CAMERA",                                // 88
	"UPDATE_DUAL_CAMERA",                               // 89
	"RELEASE_DUAL_CAMERA",                              // 90
	"SET_CREATURE_HELP",                                // 91
	"GET_TARGET_OBJECT",                                // 92
	"CREATURE_DESIRE_IS",                               // 93
	"COUNTDOWN_TIMER_EXISTS",                           // 94
	"LOOK_GAME_THING",                                  // 95
	"GET_OBJECT_DESTINATION",                           // 96
	"CREATURE_FORCE_FINISH",                            // 97
	"GET_ACTION_TEXT_FOR_OBJECT",                       // 98
	"CREATE_DUAL_CAMERA_WITH_POINT",                    // 99
	"SET_CAMERA_TO_FACE_OBJECT",                        // 100
	"MOVE_CAMERA_TO_FACE_OBJECT",                       // 101
	"GET_MOON_PERCENTAGE",                              // 102
	"POPULATE_CONTAINER",                               // 103
	"ADD_REFERENCE",                                    // 104
	"REMOVE_REFERENCE",                                 // 105
	"SET_GAME_TIME",                                    // 106
	"GET_GAME_TIME",                                    // 107
	"GET_REAL_TIME",                                    // 108
	"GET_REAL_DAY1",                                    // 109
	"GET_REAL_DAY2",                                    // 110
	"GET_REAL_MONTH",                                   // 111
	"GET_REAL_YEAR",                                    // 112
	"RUN_CAMERA_PATH",                                  // 113
	"START_DIALOGUE",                                   // 114
	"END_DIALOGUE",                                     // 115
	"IS_DIALOGUE_READY",                                // 116
	"CHANGE_WEATHER_PROPERTIES",                        // 117
	"CHANGE_LIGHTNING_PROPERTIES",                      // 118
	"CHANGE_TIME_FADE_PROPERTIES",                      // 119
	"CHANGE_CLOUD_PROPERTIES",                          // 120
	"SET_HEADING_AND_SPEED",                            // 121
	"START_GAME_SPEED",                                 // 122
	"END_GAME_SPEED",                                   // 123
	"BUILD_BUILDING",                                   // 124
	"SET_AFFECTED_BY_WIND",                             // 125
	"WIDESCREEN_TRANSISTION_FINISHED",                  // 126
	"GET_RESOURCE",                                     // 127
	"ADD_RESOURCE",                                     // 128
	"REMOVE_RESOURCE",                                  // 129
	"GET_TARGET_RELATIVE_POS",                          // 130
	"STOP_POINTING",                                    // 131
	"STOP_LOOKING",                                     // 132
	"LOOK_AT_POSITION",                                 // 133
	"PLAY_SPIRIT_ANIM",                                 // 134
	"CALL_IN_NOT_NEAR",                                 // 135
	"SET_CAMERA_ZONE",                                  // 136
	"GET_OBJECT_STATE",                                 // 137
	"SET_TIMER_TIME",                                   // 138
	"CREATE_TIMER",                                     // 139
	"GET_TIMER_TIME_REMAINING",                         // 140
	"GET_TIMER_TIME_SINCE_SET",                         // 141
	"MOVE_MUSIC",                                       // 142
	"GET_INCLUSION_DISTANCE",                           // 143
	"GET_LAND_HEIGHT",                                  // 144
	"LOAD_MAP",                                         // 145
	"STOP_ALL_SCRIPTS_EXCLUDING",                       // 146
	"STOP_ALL_SCRIPTS_IN_FILES_EXCLUDING",              // 147
	"STOP_SCRIPT",                                      // 148
	"CLEAR_CLICKED_OBJECT",                             // 149
	"CLEAR_CLICKED_POSITION",                           // 150
	"POSITION_CLICKED",                                 // 151
	"RELEASE_FROM_SCRIPT",                              // 152
	"GET_OBJECT_HAND_IS_OVER",                          // 153
	"ID_POISONED_SIZE",                                 // 154
	"IS_POISONED",                                      // 155
	"CALL_POISONED_IN",                                 // 156
	"CALL_NOT_POISONED_IN",                             // 157
	"SPIRIT_PLAYED",                                    // 158
	"CLING_SPIRIT",                                     // 159
	"FLY_SPIRIT",                                       // 160
	"SET_ID_MOVEABLE",                                  // 161
	"SET_ID_PICKUPABLE",                                // 162
	"IS_ON_FIRE",                                       // 163
	"IS_FIRE_NEAR",                                     // 164
	"STOP_SCRIPTS_IN_FILES",                            // 165
	"SET_POISONED",                                     // 166
	"SET_TEMPERATURE",                                  // 167
	"SET_ON_FIRE",                                      // 168
	"SET_TARGET",                                       // 169
	"WALK_PATH",                                        // 170
	"FOCUS_AND_POSITION_FOLLOW",                        // 171
	"GET_WALK_PATH_PERCENTAGE",                         // 172
	"CAMERA_PROPERTIES",                                // 173
	"ENABLE_DISABLE_MUSIC",                             // 174
	"GET_MUSIC_OBJ_DISTANCE",                           // 175
	"GET_MUSIC_ENUM_DISTANCE",                          // 176
	"SET_MUSIC_PLAY_POSITION",                          // 177
	"ATTACH_OBJECT_LEASH_TO_OBJECT",                    // 178
	"ATTACH_OBJECT_LEASH_TO_HAND",                      // 179
	"DETACH_OBJECT_LEASH",                              // 180
	"SET_CREATURE_ONLY_DESIRE",                         // 181
	"SET_CREATURE_ONLY_DESIRE_OFF",                     // 182
	"RESTART_MUSIC",                                    // 183
	"MUSIC_PLAYED1",                                    // 184
	"IS_OF_TYPE",                                       // 185
	"CLEAR_HIT_OBJECT",                                 // 186
	"GAME_THING_HIT",                                   // 187
	"SPELL_AT_THING",                                   // 188
	"SPELL_AT_POS",                                     // 189
	"CALL_PLAYER_CREATURE",                             // 190
	"GET_SLOWEST_SPEED",                                // 191
	"GET_OBJECT_HELD1",                                 // 192
	"HELP_SYSTEM_ON",                                   // 193
	"SHAKE_CAMERA",                                     // 194
	"SET_ANIMATION_MODIFY",                             // 195
	"SET_AVI_SEQUENCE",                                 // 196
	"PLAY_GESTURE",                                     // 197
	"DEV_FUNCTION",                                     // 198
	"HAS_MOUSE_WHEEL",                                  // 199
	"NUM_MOUSE_BUTTONS",                                // 200
	"SET_CREATURE_DEV_STAGE",                           // 201
	"SET_FIXED_CAM_ROTATION",                           // 202
	"SWAP_CREATURE",                                    // 203
	"GET_ARENA",                                        // 204
	"GET_FOOTBALL_PITCH",                               // 205
	"STOP_ALL_GAMES",                                   // 206
	"ATTACH_TO_GAME",                                   // 207
	"DETACH_FROM_GAME",                                 // 208
	"DETACH_UNDEFINED_FROM_GAME",                       // 209
	"SET_ONLY_FOR_SCRIPTS",                             // 210
	"START_MATCH_WITH_REFEREE",                         // 211
	"GAME_TEAM_SIZE",                                   // 212
	"GAME_TYPE",                                        // 213
	"GAME_SUB_TYPE",                                    // 214
	"IS_LEASHED",                                       // 215
	"SET_CREATURE_HOME",                                // 216
	"GET_HIT_OBJECT",                                   // 217
	"GET_OBJECT_WHICH_HIT",                             // 218
	"GET_NEAREST_TOWN_OF_PLAYER",                       // 219
	"SPELL_AT_POINT",                                   // 220
	"SET_ATTACK_OWN_TOWN",                              // 221
	"IS_FIGHTING",                                      // 222
	"SET_MAGIC_RADIUS",                                 // 223
	"TEMP_TEXT_WITH_NUMBER",                            // 224
	"RUN_TEXT_WITH_NUMBER",                             // 225
	"CREATURE_SPELL_REVERSION",                         // 226
	"GET_DESIRE",                                       // 227
	"GET_EVENTS_PER_SECOND",                            // 228
	"GET_TIME_SINCE",                                   // 229
	"GET_TOTAL_EVENTS",                                 // 230
	"UPDATE_SNAPSHOT",                                  // 231
	"CREATE_REWARD",                                    // 232
	"CREATE_REWARD_IN_TOWN",                            // 233
	"SET_FADE",                                         // 234
	"SET_FADE_IN",                                      // 235
	"FADE_FINISHED",                                    // 236
	"SET_PLAYER_MAGIC",                                 // 237
	"HAS_PLAYER_MAGIC",                                 // 238
	"SPIRIT_SPEAKS",                                    // 239
	"BELIEF_FOR_PLAYER",                                // 240
	"GET_HELP",                                         // 241
	"SET_LEASH_WORKS",                                  // 242
	"LOAD_MY_CREATURE",                                 // 243
	"OBJECT_RELATIVE_BELIEF",                           // 244
	"CREATE_WITH_ANGLE_AND_SCALE",                      // 245
	"SET_HELP_SYSTEM",                                  // 246
	"SET_VIRTUAL_INFLUENCE",                            // 247
	"SET_ACTIVE",                                       // 248
	"THING_VALID",                                      // 249
	"VORTEX_FADE_OUT",                                  // 250
	"REMOVE_REACTION_OF_TYPE",                          // 251
	"CREATURE_LEARN_EVERYTHING_EXCLUDING",              // 252
	"PLAYED_PERCENTAGE",                                // 253
	"OBJECT_CAST_BY_OBJECT",                            // 254
	"IS_WIND_MAGIC_AT_POS",                             // 255
	"CREATE_MIST",                                      // 256
	"SET_MIST_FADE",                                    // 257
	"GET_OBJECT_FADE",                                  // 258
	"PLAY_HAND_DEMO",                                   // 259
	"IS_PLAYING_HAND_DEMO",                             // 260
	"GET_ARSE_POSITION",                                // 261
	"IS_LEASHED_TO_OBJECT",                             // 262
	"GET_INTERACTION_MAGNITUDE",                        // 263
	"IS_CREATURE_AVAILABLE",                            // 264
	"CREATE_HIGHLIGHT",                                 // 265
	"GET_OBJECT_HELD",                                  // 266
	"GET_ACTION_COUNT",                                 // 267
	"GET_OBJECT_LEASH_TYPE",                            // 268
	"SET_FOCUS_FOLLOW",                                 // 269
	"SET_POSITION_FOLLOW",                              // 270
	"SET_FOCUS_AND_POSITION_FOLLOW",                    // 271
	"SET_CAMERA_LENS",                                  // 272
	"MOVE_CAMERA_LENS",                                 // 273
	"CREATURE_REACTION",                                // 274
	"CREATURE_IN_DEV_SCRIPT",                           // 275
	"STORE_CAMERA_DETAILS",                             // 276
	"RESTORE_CAMERA_DETAILS",                           // 277
	"START_ANGLE_SOUND1",                               // 278
	"SET_CAMERA_POS_FOC_LENS",                          // 279
	"MOVE_CAMERA_POS_FOC_LENS",                         // 280
	"GAME_TIME_ON_OFF",                                 // 281
	"MOVE_GAME_TIME",                                   // 282
	"SET_HIGH_GRAPHICS_DETAIL",                         // 283
	"SET_SKELETON",                                     // 284
	"IS_SKELETON",                                      // 285
	"PLAYER_SPELL_CAST_TIME",                           // 286
	"PLAYER_SPELL_LAST_CAST",                           // 287
	"GET_LAST_SPELL_CAST_POS",                          // 288
	"ADD_SPOT_VISUAL_TARGET_POS",                       // 289
	"ADD_SPOT_VISUAL_TARGET_OBJECT",                    // 290
	"SET_INDESTRUCTABLE",                               // 291
	"SET_GRAPHICS_CLIPPING",                            // 292
	"SPIRIT_APPEAR",                                    // 293
	"SPIRIT_DISAPPEAR",                                 // 294
	"SET_FOCUS_ON_OBJECT",                              // 295
	"RELEASE_OBJECT_FOCUS",                             // 296
	"IMMERSION_EXISTS",                                 // 297
	"SET_DRAW_LEASH",                                   // 298
	"SET_DRAW_HIGHLIGHT",                               // 299
	"SET_OPEN_CLOSE",                                   // 300
	"SET_INTRO_BUILDING",                               // 301
	"CREATURE_FORCE_FRIENDS",                           // 302
	"MOVE_COMPUTER_PLAYER_POSITION",                    // 303
	"ENABLE_DISABLE_COMPUTER_PLAYER1",                  // 304
	"GET_COMPUTER_PLAYER_POSITION",                     // 305
	"SET_COMPUTER_PLAYER_POSITION",                     // 306
	"GET_STORED_CAMERA_POSITION",                       // 307
	"GET_STORED_CAMERA_FOCUS",                          // 308
	"CALL_NEAR_IN_STATE",                               // 309
	"SET_CREATURE_SOUND",                               // 310
	"CREATURE_INTERACTING_WITH",                        // 311
	"SET_SUN_DRAW",                                     // 312
	"OBJECT_INFO_BITS",                                 // 313
	"SET_HURT_BY_FIRE",                                 // 314
	"CONFINED_OBJECT",                                  // 315
	"CLEAR_CONFINED_OBJECT",                            // 316
	"GET_OBJECT_FLOCK",                                 // 317
	"SET_PLAYER_BELIEF",                                // 318
	"PLAY_JC_SPECIAL",                                  // 319
	"IS_PLAYING_JC_SPECIAL",                            // 320
	"VORTEX_PARAMETERS",                                // 321
	"LOAD_CREATURE",                                    // 322
	"IS_SPELL_CHARGING",                                // 323
	"IS_THAT_SPELL_CHARGING",                           // 324
	"OPPOSING_CREATURE",                                // 325
	"FLOCK_WITHIN_LIMITS",                              // 326
	"HIGHLIGHT_PROPERTIES",                             // 327
	"LAST_MUSIC_LINE",                                  // 328
	"HAND_DEMO_TRIGGER",                                // 329
	"GET_BELLY_POSITION",                               // 330
	"SET_CREATURE_CREED_PROPERTIES",                    // 331
	"GAME_THING_CAN_VIEW_CAMERA",                       // 332
	"GAME_PLAY_SAY_SOUND_EFFECT",                       // 333
	"SET_TOWN_DESIRE_BOOST",                            // 334
	"IS_LOCKED_INTERACTION",                            // 335
	"SET_CREATURE_NAME",                                // 336
	"COMPUTER_PLAYER_READY",                            // 337
	"ENABLE_DISABLE_COMPUTER_PLAYER2",                  // 338
	"CLEAR_ACTOR_MIND",                                 // 339
	"ENTER_EXIT_CITADEL",                               // 340
	"START_ANGLE_SOUND2",                               // 341
	"THING_JC_SPECIAL",                                 // 342
	"MUSIC_PLAYED2",                                    // 343
	"UPDATE_SNAPSHOT_PICTURE",                          // 344
	"STOP_SCRIPTS_IN_FILES_EXCLUDING",                  // 345
	"CREATE_RANDOM_VILLAGER_OF_TRIBE",                  // 346
	"TOGGLE_LEASH",                                     // 347
	"GAME_SET_MANA",                                    // 348
	"SET_MAGIC_PROPERTIES",                             // 349
	"SET_GAME_SOUND",                                   // 350
	"SEX_IS_MALE",                                      // 351
	"GET_FIRST_HELP",                                   // 352
	"GET_LAST_HELP",                                    // 353
	"IS_ACTIVE",                                        // 354
	"SET_BOOKMARK_POSITION",                            // 355
	"SET_SCAFFOLD_PROPERTIES",                          // 356
	"SET_COMPUTER_PLAYER_PERSONALITY",                  // 357
	"SET_COMPUTER_PLAYER_SUPPRESSION",                  // 358
	"FORCE_COMPUTER_PLAYER_ACTION",                     // 359
	"QUEUE_COMPUTER_PLAYER_ACTION",                     // 360
	"GET_TOWN_WITH_ID",                                 // 361
	"SET_DISCIPLE",                                     // 362
	"RELEASE_COMPUTER_PLAYER",                          // 363
	"SET_COMPUTER_PLAYER_SPEED",                        // 364
	"SET_FOCUS_FOLLOW_COMPUTER_PLAYER",                 // 365
	"SET_POSITION_FOLLOW_COMPUTER_PLAYER",              // 366
	"CALL_COMPUTER_PLAYER",                             // 367
	"CALL_BUILDING_IN_TOWN",                            // 368
	"SET_CAN_BUILD_WORSHIPSITE",                        // 369
	"GET_FACING_CAMERA_POSITION",                       // 370
	"SET_COMPUTER_PLAYER_ATTITUDE",                     // 371
	"GET_COMPUTER_PLAYER_ATTITUDE",                     // 372
	"LOAD_COMPUTER_PLAYER_PERSONALITY",                 // 373
	"SAVE_COMPUTER_PLAYER_PERSONALITY",                 // 374
	"SET_PLAYER_ALLY",                                  // 375
	"CALL_FLYING",                                      // 376
	"SET_OBJECT_FADE_IN",                               // 377
	"IS_AFFECTED_BY_SPELL",                             // 378
	"SET_MAGIC_IN_OBJECT",                              // 379
	"ID_ADULT_SIZE",                                    // 380
	"OBJECT_CAPACITY",                                  // 381
	"OBJECT_ADULT_CAPACITY",                            // 382
	"SET_CREATURE_AUTO_FIGHTING",                       // 383
	"IS_AUTO_FIGHTING",                                 // 384
	"SET_CREATURE_QUEUE_FIGHT_MOVE",                    // 385
	"SET_CREATURE_QUEUE_FIGHT_SPELL",                   // 386
	"SET_CREATURE_QUEUE_FIGHT_STEP",                    // 387
	"GET_CREATURE_FIGHT_ACTION",                        // 388
	"CREATURE_FIGHT_QUEUE_HITS",                        // 389
	"GET_PLAYER_ALLY",                                  // 390
	"SET_PLAYER_WIND_RESISTANCE",                       // 391
	"GET_PLAYER_WIND_RESISTANCE",                       // 392
	"PAUSE_UNPAUSE_CLIMATE_SYSTEM",                     // 393
	"PAUSE_UNPAUSE_STORM_CREATION_IN_CLIMATE_SYSTEM",   // 394
	"GET_MANA_FOR_SPELL",                               // 395
	"KILL_STORMS_IN_AREA",                              // 396
	"INSIDE_TEMPLE",                                    // 397
	"RESTART_OBJECT",                                   // 398
	"SET_GAME_TIME_PROPERTIES",                         // 399
	"RESET_GAME_TIME_PROPERTIES",                       // 400
	"SOUND_EXISTS",                                     // 401
	"GET_TOWN_WORSHIP_DEATHS",                          // 402
	"GAME_CLEAR_DIALOGUE",                              // 403
	"GAME_CLOSE_DIALOGUE",                              // 404
	"GET_HAND_STATE",                                   // 405
	"SET_INTERFACE_CITADEL",                            // 406
	"MAP_SCRIPT_FUNCTION",                              // 407
	"WITHIN_ROTATION",                                  // 408
	"GET_PLAYER_TOWN_TOTAL",                            // 409
	"SPIRIT_SCREEN_POINT",                              // 410
	"KEY_DOWN",                                         // 411
	"SET_FIGHT_CAMERA_EXIT",                            // 412
	"GET_OBJECT_CLICKED",                               // 413
	"GET_MANA",                                         // 414
	"CLEAR_PLAYER_SPELL_CHARGING",                      // 415
	"STOP_SOUND_EFFECT",                                // 416
	"GET_TOTEM_STATUE",                                 // 417
	"SET_SET_ON_FIRE",                                  // 418
	"SET_LAND_BALANCE",                                 // 419
	"SET_OBJECT_BELIEF_SCALE",                          // 420
	"START_IMMERSION",                                  // 421
	"STOP_IMMERSION",                                   // 422
	"STOP_ALL_IMMERSION",                               // 423
	"SET_CREATURE_IN_TEMPLE",                           // 424
	"GAME_DRAW_TEXT",                                   // 425
	"GAME_DRAW_TEMP_TEXT",                              // 426
	"FADE_ALL_DRAW_TEXT",                               // 427
	"SET_DRAW_TEXT_COLOUR",                             // 428
	"SET_CLIPPING_WINDOW",                              // 429
	"CLEAR_CLIPPING_WINDOW",                            // 430
	"SAVE_GAME_IN_SLOT",                                // 431
	"SET_OBJECT_CARRYING",                              // 432
	"POS_VALID_FOR_CREATURE",                           // 433
	"GET_TIME_SINCE_OBJECT_ATTACKED",                   // 434
	"GET_TOWN_AND_VILLAGER_HEALTH_TOTAL",               // 435
	"GAME_ADD_FOR_BUILDING",                            // 436
	"ENABLE_DISABLE_ALIGNMENT_MUSIC",                   // 437
	"GET_DEAD_LIVING",                                  // 438
	"ATTACH_SOUND_TAG",                                 // 439
	"DETACH_SOUND_TAG",                                 // 440
	"GET_SACRIFICE_TOTAL",                              // 441
	"GAME_SOUND_PLAYING",                               // 442
	"GET_TEMPLE_POSITION",                              // 443
	"CREATURE_AUTOSCALE",                               // 444
	"GET_SPELL_ICON_IN_TEMPLE",                         // 445
	"GAME_CLEAR_COMPUTER_PLAYER_ACTIONS",               // 446
	"GET_FIRST_IN_CONTAINER",                           // 447
	"GET_NEXT_IN_CONTAINER",                            // 448
	"GET_TEMPLE_ENTRANCE_POSITION",                     // 449
	"SAY_SOUND_EFFECT_PLAYING",                         // 450
	"SET_HAND_DEMO_KEYS",                               // 451
	"CAN_SKIP_TUTORIAL",                                // 452
	"CAN_SKIP_CREATURE_TRAINING",                       // 453
	"IS_KEEPING_OLD_CREATURE",                          // 454
	"CURRENT_PROFILE_HAS_CREATURE",                     // 455
	"THING_PLAY_ANIM",                                  // 456
	"SET_SCRIPT_STATE_WITH_PARAMS",                     // 457
	"START_COUNTDOWN_TIMER",                            // 458
	"END_COUNTDOWN_TIMER",                              // 459
	"SET_COUNTDOWN_TIMER_DRAW",                         // 460
	"SET_OBJECT_SCORE",                                 // 461
	"GET_OBJECT_SCORE",                                 // 462
	"SET_CREATURE_FOLLOW_MASTER",                       // 463
	"SET_CREATURE_DISTANCE_FROM_HOME",                  // 464
	"GAME_DELETE_FIRE",                                 // 465
	"GET_OBJECT_EP",                                    // 466
	"GET_COUNTDOWN_TIMER_TIME",                         // 467
	"SET_OBJECT_IN_PLAYER_HAND",                        // 468
	"CREATE_PLAYER_TEMPLE",                             // 469
	"START_CANNON_CAMERA",                              // 470
	"END_CANNON_CAMERA",                                // 471
	"GET_LANDING_POS",                                  // 472
	"SET_CREATURE_MASTER",                              // 473
	"SET_CANNON_PERCENTAGE",                            // 474
	"SET_DIE_ROLL_CHECK",                               // 475
	"SET_CAMERA_HEADING_FOLLOW",                        // 476
	"SET_CANNON_STRENGTH",                              // 477
	"GAME_CREATE_TOWN",                                 // 478
	"SET_OBJECT_NAVIGATION",                            // 479
	"DO_ACTION_AT_POS",                                 // 480
	"GET_OBJECT_DESIRE",                                // 481
	"GET_CREATURE_CURRENT_ACTION",                      // 482
	"GET_CREATURE_SPELL_SKILL",                         // 483
	"GET_CREATURE_KNOWS_ACTION",                        // 484
	"CALL_BUILDING_WOODPILE_IN_TOWN",                   // 485
	"GET_MOUSE_ACROSS",                                 // 486
	"GET_MOUSE_DOWN",                                   // 487
	"SET_DOLPHIN_MOVE",                                 // 488
	"MOUSE_DOWN",                                       // 489
	"IN_WIDESCREEN",                                    // 490
	"AFFECTED_BY_SNOW",                                 // 491
	"SET_DOLPHIN_SPEED",                                // 492
	"SET_DOLPHIN_WAIT",                                 // 493
	"FIRE_GUN",                                         // 494
	"GUN_ANGLE_PITCH",                                  // 495
	"SET_OBJECT_TATTOO",                                // 496
	"CREATURE_CLEAR_FIGHT_QUEUE",                       // 497
	"CAN_BE_LEASHED",                                   // 498
	"SET_BOOKMARK_ON_OBJECT",                           // 499
	"SET_OBJECT_LIGHTBULB",                             // 500
	"SET_CREATURE_CAN_DROP",                            // 501
	"PLAY_SPIRIT_ANIM_IN_WORLD",                        // 502
	"SET_OBJECT_COLOUR",                                // 503
	"EFFECT_FROM_FILE",                                 // 504
	"ALEX_SPECIAL_EFFECT_POSITION",                     // 505
	"DELETE_FRAGMENTS_IN_RADIUS",                       // 506
	"DELETE_FRAGMENTS_FOR_OBJECT",                      // 507
	"SET_CAMERA_AUTO_TRACK",                            // 508
	"CREATURE_HELP_ON",                                 // 509
	"CREATURE_CAN_LEARN",                               // 510
	"GET_OBJECT_HAND_POSITION",                         // 511
	"CREATURE_SET_RIGHT_HAND_ONLY",                     // 512
	"GAME_HOLD_WIDESCREEN",                             // 513
	"CREATURE_CREATE_YOUNG_WITH_KNOWLEDGE",             // 514
	"STOP_DIALOGUE_SOUND",                              // 515
	"GAME_THING_HIT_LAND",                              // 516
	"GET_LAST_OBJECT_WHICH_HIT_LAND",                   // 517
	"CLEAR_HIT_LAND_OBJECT",                            // 518
	"SET_DRAW_SCOREBOARD",                              // 519
	"GET_BRACELET_POSITION",                            // 520
	"SET_FIGHT_LOCK",                                   // 521
	"SET_VILLAGER_SOUND",                               // 522
	"CLEAR_SPELLS_ON_OBJECT",                           // 523
	"ENABLE_OBJECT_IMMUNE_TO_SPELLS",                   // 524
	"IS_OBJECT_IMMUNE_TO_SPELLS",                       // 525
	"GET_OBJECT_OBJECT_LEASHED_TO",                     // 526
	"SET_FIGHT_QUEUE_ONLY",                             // 527
}

var nativeIDs = func() map[string]int {
	m := make(map[string]int, len(nativeNames))
	for id, name := range nativeNames {
		m[name] = id
	}
	return m
}()

// NativeName returns the name of a native function id.
func NativeName(id int) (string, bool) {
	if id < 0 || id >= len(nativeNames) {
		return "", false
	}
	return nativeNames[id], true
}

// NativeID returns the id of a native function by name.
func NativeID(name string) (int, bool) {
	id, ok := nativeIDs[name]
	return id, ok
}

// NativeCount returns the number of known native functions.
func NativeCount() int {
	return len(nativeNames)
}
